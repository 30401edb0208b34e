package version

import "fmt"

// 构建时通过 -ldflags "-X" 注入。
var (
	Version = "0.1.0"
	Commit  = "dev"
)

// Full 返回 CLI -version 输出。
func Full() string {
	return fmt.Sprintf("nabha-shell %s (%s)", Version, Commit)
}

// UserAgent 是访问源站时使用的 User-Agent。
func UserAgent() string {
	return "nabha-shell/" + Version
}
