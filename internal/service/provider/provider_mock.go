package provider

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// MockProvider 记录调用次数和消息的内存供应商，压测和单元测试使用
// 按顺序消费 errs，消费完之后一直成功
type MockProvider struct {
	count int64

	mu       sync.Mutex
	errs     []error
	messages []Message
}

func NewMockProvider(errs ...error) *MockProvider {
	return &MockProvider{errs: errs}
}

func (m *MockProvider) Send(_ context.Context, msg Message) (Receipt, error) {
	v := atomic.AddInt64(&m.count, 1)

	m.mu.Lock()
	m.messages = append(m.messages, msg)
	var err error
	if len(m.errs) > 0 {
		err = m.errs[0]
		m.errs = m.errs[1:]
	}
	m.mu.Unlock()

	if err != nil {
		return Receipt{}, err
	}
	return Receipt{
		ID:        fmt.Sprintf("mock-%d", v),
		Status:    "sent",
		CreatedAt: time.Now(),
	}, nil
}

// Count 调用次数
func (m *MockProvider) Count() int {
	return int(atomic.LoadInt64(&m.count))
}

// Messages 收到的消息副本
func (m *MockProvider) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]Message, len(m.messages))
	copy(res, m.messages)
	return res
}
