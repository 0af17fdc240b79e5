// sitebuild 生成车库目录的静态站点
//
// 用法:
//
//	go run ./cmd/sitebuild                    # 使用 data/cars.json、templates/，输出到 dist/
//	go run ./cmd/sitebuild --root ./site --catalog cars.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/garage/internal/site"
)

func main() {
	root := flag.String("root", ".", "项目根目录（assets/ css/ fonts/ 相对于它）")
	catalog := flag.String("catalog", "", "目录文件路径（默认 <root>/data/cars.json）")
	templates := flag.String("templates", "", "模板目录（默认 <root>/templates）")
	out := flag.String("out", "", "输出目录（默认 <root>/dist）")
	verbose := flag.Bool("verbose", true, "输出构建日志")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	opts := site.DefaultBuildOptions(*root)
	if *catalog != "" {
		opts.CatalogPath = *catalog
	}
	if *templates != "" {
		opts.TemplatesDir = *templates
	}
	if *out != "" {
		opts.OutDir = *out
	}

	result, err := site.Build(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}

	abs, _ := filepath.Abs(opts.OutDir)
	fmt.Printf("Wrote %d pages to %s\n", len(result.Pages), abs)
}
