package site

import (
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// CarListPlaceholder 首页模板中被缩略图列表替换的标记
const CarListPlaceholder = "<!-- CAR_LIST_PLACEHOLDER -->"

// 模板文件名
const (
	IndexTemplateName  = "index.html"
	DetailTemplateName = "car-detail.html"
)

// CopiedDirs 构建时原样复制到输出目录的静态目录（不存在则跳过）
var CopiedDirs = []string{"assets", "css", "fonts"}

// ErrUnsafeOutDir 输出目录会覆盖项目文件或静态源目录时返回
var ErrUnsafeOutDir = errors.New("unsafe output directory")

// BuildOptions 静态站点构建参数
type BuildOptions struct {
	// Root 项目根目录，CopiedDirs 相对于它查找
	Root string
	// CatalogPath 目录文件路径
	CatalogPath string
	// TemplatesDir 模板目录
	TemplatesDir string
	// OutDir 输出目录，构建前会被整个删除重建；不能包含 Root，也不能位于被复制的目录内
	OutDir string
}

// DefaultBuildOptions 返回以 root 为根目录的默认构建参数
func DefaultBuildOptions(root string) BuildOptions {
	return BuildOptions{
		Root:         root,
		CatalogPath:  filepath.Join(root, "data", "cars.json"),
		TemplatesDir: filepath.Join(root, "templates"),
		OutDir:       filepath.Join(root, "dist"),
	}
}

// BuildResult 构建结果摘要
type BuildResult struct {
	Pages  []string // 生成的页面文件名（相对 OutDir）
	Copied []string // 复制的静态目录
}

// RenderCarList 生成首页的缩略图列表片段
func RenderCarList(cars []Car) string {
	var b strings.Builder
	for _, car := range cars {
		fmt.Fprintf(&b, "\n    <a href=\"%s.html\" class=\"thumbnail\">\n", html.EscapeString(car.ID))
		fmt.Fprintf(&b, "        <img src=\"%s\" alt=\"%s\" class=\"thumbnail-image\" width=\"1\" height=\"1\" loading=\"lazy\">\n",
			html.EscapeString(car.Image), html.EscapeString(car.Name))
		b.WriteString("    </a>\n")
	}
	return b.String()
}

// RenderIndex 将模板中第一个占位符替换为缩略图列表
func RenderIndex(template string, cars []Car) string {
	return strings.Replace(template, CarListPlaceholder, RenderCarList(cars), 1)
}

// RenderDetail 替换详情模板中所有的 {{name}}、{{color}}、{{image}}
func RenderDetail(template string, car Car) string {
	r := strings.NewReplacer(
		"{{name}}", html.EscapeString(car.Name),
		"{{color}}", html.EscapeString(car.Color),
		"{{image}}", html.EscapeString(car.Image),
	)
	return r.Replace(template)
}

// Build 生成静态站点
//
// 步骤：检查输出目录位置 → 加载目录与模板 → 清空并重建输出目录 → 写 index.html 和每辆车的 <id>.html
// → 复制存在的静态目录。
func Build(opts BuildOptions) (*BuildResult, error) {
	if err := checkOutDir(opts); err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(opts.CatalogPath)
	if err != nil {
		return nil, err
	}

	indexTemplate, err := os.ReadFile(filepath.Join(opts.TemplatesDir, IndexTemplateName))
	if err != nil {
		return nil, fmt.Errorf("failed to read index template: %w", err)
	}
	detailTemplate, err := os.ReadFile(filepath.Join(opts.TemplatesDir, DetailTemplateName))
	if err != nil {
		return nil, fmt.Errorf("failed to read detail template: %w", err)
	}

	if err := os.RemoveAll(opts.OutDir); err != nil {
		return nil, fmt.Errorf("failed to clean %s: %w", opts.OutDir, err)
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", opts.OutDir, err)
	}

	result := &BuildResult{}

	log.Printf("[Site] Generating %s...", IndexTemplateName)
	if err := writePage(opts.OutDir, "index.html", RenderIndex(string(indexTemplate), catalog.Cars)); err != nil {
		return nil, err
	}
	result.Pages = append(result.Pages, "index.html")

	log.Printf("[Site] Generating %d detail pages...", catalog.Len())
	for _, car := range catalog.Cars {
		name := car.ID + ".html"
		if err := writePage(opts.OutDir, name, RenderDetail(string(detailTemplate), car)); err != nil {
			return nil, err
		}
		result.Pages = append(result.Pages, name)
	}

	for _, dir := range CopiedDirs {
		src := filepath.Join(opts.Root, dir)
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			continue
		}
		log.Printf("[Site] Copying %s/", dir)
		if err := copyDir(src, filepath.Join(opts.OutDir, dir)); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", dir, err)
		}
		result.Copied = append(result.Copied, dir)
	}

	log.Printf("[Site] Build complete: %d pages", len(result.Pages))
	return result, nil
}

// checkOutDir 确认删除 OutDir 不会波及项目根目录、模板、目录文件或被复制的静态目录
func checkOutDir(opts BuildOptions) error {
	out, err := filepath.Abs(opts.OutDir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", opts.OutDir, err)
	}

	protected := []string{opts.Root, opts.TemplatesDir, opts.CatalogPath}
	for _, p := range protected {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		if isWithin(out, abs) {
			return fmt.Errorf("%w: %s contains %s", ErrUnsafeOutDir, opts.OutDir, p)
		}
	}

	for _, dir := range CopiedDirs {
		src, err := filepath.Abs(filepath.Join(opts.Root, dir))
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		if isWithin(src, out) {
			return fmt.Errorf("%w: %s is inside %s/", ErrUnsafeOutDir, opts.OutDir, dir)
		}
	}
	return nil
}

// isWithin 判断 path 是否等于 dir 或位于 dir 之下（两者均为绝对路径）
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func writePage(outDir, name, content string) error {
	if err := os.WriteFile(filepath.Join(outDir, name), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// copyDir 递归复制目录
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
