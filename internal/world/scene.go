package world

import "sync"

// NodeKind - вид узла в модели сцены клиента
type NodeKind string

const (
	// NodeSplats - фотореалистичный меш облака точек
	NodeSplats NodeKind = "splats"
	// NodeWireframe - каркасная прокси-геометрия для отладки
	NodeWireframe NodeKind = "wireframe"
)

// Scene - серверная модель графа сцены клиента: какие узлы сейчас
// должны быть прикреплены. Инвариант отладочного режима: после загрузки
// ассета прикреплен ровно один из узлов {splats, wireframe}.
type Scene struct {
	mu    sync.RWMutex
	nodes map[NodeKind]bool
}

// NewScene создает пустую модель сцены
func NewScene() *Scene {
	return &Scene{nodes: make(map[NodeKind]bool)}
}

// Attach прикрепляет узел к сцене
func (s *Scene) Attach(kind NodeKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[kind] = true
}

// Detach открепляет узел от сцены
func (s *Scene) Detach(kind NodeKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, kind)
}

// Has сообщает, прикреплен ли узел
func (s *Scene) Has(kind NodeKind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[kind]
}

// Attached возвращает количество прикрепленных узлов
func (s *Scene) Attached() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}
