// Package registry cung cấp registry generic, thread-safe, dùng để quản lý các handle dùng chung
// (ví dụ: *mongo.Collection theo tên) được tạo lúc khởi động và truyền vào các service.
package registry

import (
	"fmt"
	"sync"

	"github.com/maddygoround/hapi-go-mongo/internal/common"
)

// Registry quản lý các item theo tên. Thread-safety đảm bảo qua sync.RWMutex.
//
// Example:
//
//	collections := NewRegistry[*mongo.Collection]()
//	collections.Register("tickets", db.Collection("tickets"))
//	coll, ok := collections.Get("tickets")
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo và trả về một registry mới
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký item; ghi đè nếu name đã tồn tại.
// Trả về isNew = false khi ghi đè, lỗi khi name rỗng.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// MustGet lấy item theo tên, trả về lỗi ErrNotFound nếu chưa đăng ký
func (r *Registry[T]) MustGet(name string) (T, error) {
	item, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, fmt.Errorf("không tìm thấy %s trong registry: %w", name, common.ErrNotFound)
	}
	return item, nil
}

// Names trả về danh sách tên đã đăng ký (thứ tự không xác định)
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}
