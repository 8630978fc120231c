package nudge

type mockNotifier struct {
	called    bool
	habits    []string
	hoursLeft int
	err       error
}

func (m *mockNotifier) SendNudge(habits []string, hoursTillExpiry int) error {
	m.called = true
	m.habits = habits
	m.hoursLeft = hoursTillExpiry
	return m.err
}
