//go:build !mobile

// 非移动端构建时 mobile.go 与 embed.go 都被排除，
// 保留此文件使 go build ./... 和 go test ./... 不会因包内没有可编译文件而报错。
package mobile
