package relay

import (
	"sync"

	"go.uber.org/zap"
)

// Registry mantiene qué sesiones vivas pertenecen a qué categorías. Las
// categorías se crean implícitamente con el primer join y desaparecen cuando
// quedan vacías. Sin persistencia: se reconstruye vacío en cada arranque.
type Registry struct {
	logger *zap.Logger

	mu      sync.RWMutex
	members map[string]map[*Session]struct{}
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		logger:  logger,
		members: make(map[string]map[*Session]struct{}),
	}
}

// Join agrega la sesión a la categoría. Idempotente.
func (r *Registry) Join(s *Session, category string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.members[category]
	if !ok {
		bucket = make(map[*Session]struct{})
		r.members[category] = bucket
	}
	bucket[s] = struct{}{}
	r.logger.Info("session joined category",
		zap.String("session_id", s.ID()),
		zap.String("category", category),
		zap.Int("members", len(bucket)),
	)
}

// Leave quita la sesión de la categoría; no es error si no era miembro.
func (r *Registry) Leave(s *Session, category string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.members[category]
	if !ok {
		return
	}
	if _, ok := bucket[s]; !ok {
		return
	}
	delete(bucket, s)
	if len(bucket) == 0 {
		delete(r.members, category)
	}
	r.logger.Info("session left category",
		zap.String("session_id", s.ID()),
		zap.String("category", category),
	)
}

// DropAll quita la sesión de todas sus categorías. Seguro con cero
// membresías y seguro de invocar más de una vez.
func (r *Registry) DropAll(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for category, bucket := range r.members {
		if _, ok := bucket[s]; !ok {
			continue
		}
		delete(bucket, s)
		if len(bucket) == 0 {
			delete(r.members, category)
		}
	}
}

// MembersOf devuelve una copia del conjunto de miembros: iterar el resultado
// no se ve afectado por joins/leaves concurrentes posteriores.
func (r *Registry) MembersOf(category string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.members[category]
	out := make([]*Session, 0, len(bucket))
	for s := range bucket {
		out = append(out, s)
	}
	return out
}
