package settlement

import "github.com/refluxorg/libreflux-go/account"

// MockBank is a test double for Bank.
// All function fields must be set before the corresponding method is called.
type MockBank struct {
	BalanceFn func() uint64
	DepositFn func(amount uint64)
	SendFn    func(to account.Account, amount uint64) error
}

func (m *MockBank) Balance() uint64 {
	return m.BalanceFn()
}

func (m *MockBank) Deposit(amount uint64) {
	m.DepositFn(amount)
}

func (m *MockBank) Send(to account.Account, amount uint64) error {
	return m.SendFn(to, amount)
}
