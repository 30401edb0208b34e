package assetcache

// Manifest 是安装时必须写入缓存的外壳资源键，按声明顺序安装。运行期不可修改，
// 升级只改变缓存名。
type Manifest []string

var shellManifest = Manifest{
	"/",
	"/index.html",
	"/style.css",
	"/app.js",
}

// DefaultManifest 返回外壳清单的副本：根文档、index、样式表与脚本包。
func DefaultManifest() Manifest {
	return append(Manifest(nil), shellManifest...)
}

// Contains 判断 key 是否属于清单。
func (m Manifest) Contains(key string) bool {
	for _, entry := range m {
		if entry == key {
			return true
		}
	}
	return false
}
