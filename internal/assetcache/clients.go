package assetcache

import "sync"

// ClientSet 记录已打开的客户端视图及其受控的缓存版本。
// 激活之前打开的视图不受控（版本为空），其请求直接走网络；Claim 之后
// 所有视图立即由新版本接管，无需刷新。
type ClientSet struct {
	mu      sync.RWMutex
	active  string
	clients map[string]string
}

// NewClientSet 创建空的客户端集合。
func NewClientSet() *ClientSet {
	return &ClientSet{clients: make(map[string]string)}
}

// Register 登记客户端视图并返回其控制版本。新视图由当前激活版本控制。
func (s *ClientSet) Register(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if controller, ok := s.clients[id]; ok {
		return controller
	}
	s.clients[id] = s.active
	return s.active
}

// Controller 返回客户端的控制版本；未登记的客户端视为新打开的视图。
func (s *ClientSet) Controller(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if controller, ok := s.clients[id]; ok {
		return controller
	}
	return s.active
}

// Active 返回最近一次 Claim 的版本。
func (s *ClientSet) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Claim 让 version 接管所有已登记的视图，返回被接管的数量。
func (s *ClientSet) Claim(version string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = version
	for id := range s.clients {
		s.clients[id] = version
	}
	return len(s.clients)
}

// Len 返回已登记的视图数量。
func (s *ClientSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
