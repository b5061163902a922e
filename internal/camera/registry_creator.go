package camera

import (
	"fmt"
	"sync"
)

// RegistryCreator はデバイスレジストリの取得方法を抽象化する
type RegistryCreator interface {
	CreateRegistry() (Registry, error)
}

// RegistryCreatorFunc は関数をRegistryCreatorとして扱うアダプタ
type RegistryCreatorFunc func() (Registry, error)

// CreateRegistry はfを呼び出す
func (f RegistryCreatorFunc) CreateRegistry() (Registry, error) {
	return f()
}

// SharedRegistryCreator は最初に作成したレジストリを使い回す
// SDKのレジストリはプロセス内でシングルトンのため
type SharedRegistryCreator struct {
	creator RegistryCreator

	once     sync.Once
	registry Registry
	err      error
}

// NewSharedRegistryCreator は新しいSharedRegistryCreatorを作成する
func NewSharedRegistryCreator(creator RegistryCreator) *SharedRegistryCreator {
	return &SharedRegistryCreator{creator: creator}
}

// CreateRegistry は共有レジストリを返す
func (s *SharedRegistryCreator) CreateRegistry() (Registry, error) {
	s.once.Do(func() {
		s.registry, s.err = s.creator.CreateRegistry()
		if s.err != nil {
			s.err = fmt.Errorf("デバイスレジストリの取得に失敗: %w", s.err)
		}
	})
	return s.registry, s.err
}

// MockRegistryCreator はテスト用のRegistryCreator実装
type MockRegistryCreator struct {
	Registry *MockRegistry
}

// NewMockRegistryCreator は新しいMockRegistryCreatorを作成する
func NewMockRegistryCreator(registry *MockRegistry) RegistryCreator {
	return &MockRegistryCreator{Registry: registry}
}

// CreateRegistry はモックレジストリを返す
func (m *MockRegistryCreator) CreateRegistry() (Registry, error) {
	return m.Registry, nil
}
