package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name string, args ...string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args...)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }
func (f *fakeExec) Menu(ctx context.Context) error {
	f.record("menu")
	return nil
}
func (f *fakeExec) Signup(ctx context.Context) error {
	f.record("signup")
	return nil
}
func (f *fakeExec) VerifyOTP(ctx context.Context) error {
	f.record("verify")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) ForgotPassword(ctx context.Context) error {
	f.record("forgot")
	return nil
}
func (f *fakeExec) ResetPassword(ctx context.Context) error {
	f.record("reset")
	return nil
}
func (f *fakeExec) SwitchTab(ctx context.Context, name string) error {
	f.record("tab", name)
	return nil
}
func (f *fakeExec) Cart(ctx context.Context) error {
	f.record("cart")
	return nil
}
func (f *fakeExec) AddItem(ctx context.Context, id string) error {
	f.record("add", id)
	return nil
}
func (f *fakeExec) RemoveItem(ctx context.Context, id string) error {
	f.record("remove", id)
	return nil
}
func (f *fakeExec) SetQuantity(ctx context.Context, id, qty string) error {
	f.record("qty", id, qty)
	return nil
}
func (f *fakeExec) Favorite(ctx context.Context, id string) error {
	f.record("fav", id)
	return nil
}
func (f *fakeExec) Unfavorite(ctx context.Context, id string) error {
	f.record("unfav", id)
	return nil
}
func (f *fakeExec) PlaceOrder(ctx context.Context) error {
	f.record("order")
	return nil
}
func (f *fakeExec) ChangePassword(ctx context.Context) error {
	f.record("passwd")
	return nil
}
func (f *fakeExec) EditProfile(ctx context.Context) error {
	f.record("editprofile")
	return nil
}
func (f *fakeExec) SetOrderStatus(ctx context.Context, id, status string) error {
	f.record("setstatus", id, status)
	return nil
}
func (f *fakeExec) SetUserRole(ctx context.Context, id, role string) error {
	f.record("setrole", id, role)
	return nil
}
func (f *fakeExec) AddMenuItem(ctx context.Context) error {
	f.record("additem")
	return nil
}
func (f *fakeExec) EditMenuItem(ctx context.Context, id string) error {
	f.record("edititem", id)
	return nil
}
func (f *fakeExec) DeleteMenuItem(ctx context.Context, id string) error {
	f.record("delitem", id)
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout")
	f.loggedIn = false
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"menu",
		"login",
		"help",
		"add m1",
		"qty m1 3",
		"cart",
		"fav m2",
		"order",
		"tab orders",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"menu", "login", "add", "qty", "cart", "fav", "order", "tab", "logout"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgumentsArePassed(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("setstatus o1 Delivered\nsetrole u2 ADMIN\nexit\n")
	exec := &fakeExec{loggedIn: true, admin: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	want := []string{"o1", "Delivered", "u2", "ADMIN"}
	if len(exec.args) != len(want) {
		t.Fatalf("args mismatch: got %v, want %v", exec.args, want)
	}
	for i := range want {
		if exec.args[i] != want[i] {
			t.Fatalf("args mismatch: got %v, want %v", exec.args, want)
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("add\nqty m1\ntab\nsetstatus o1\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
