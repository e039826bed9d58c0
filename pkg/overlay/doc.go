// Package overlay 按目录层级叠加命名配置片段。
//
// 目录结构示例：
//
//	root/
//	  _default.json
//	  prod.json
//	  eu/
//	    _default.json
//	    prod.yaml
//
// Get([]string{"prod"}, []string{"eu"}) 依次合并（后者优先）：
//
//	root/_default → root/prod → root/eu/_default → root/eu/prod
//
// 缺失的片段按空映射处理。
//
// # 缓存
//
// 片段按 (根目录, 目录, 名称) 缓存在 [Cache] 中，文件变化不会自动失效：
// 使用 [Resolver.Invalidate] / [Cache.Invalidate] / [Cache.Purge] 手动失效，或通过 [WithTTL] 设置过期时间。
package overlay
