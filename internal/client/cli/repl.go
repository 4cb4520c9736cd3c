package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Status(ctx context.Context) error
	WatchAd(ctx context.Context) error
	Mining(ctx context.Context) error
	Deposit(ctx context.Context, args []string) error
	Spin(ctx context.Context) error
	WithdrawDeposit(ctx context.Context) error
	VIP(ctx context.Context) error
	Referral(ctx context.Context) error
	Invite(ctx context.Context) error
	Share(ctx context.Context) error
	Redeem(ctx context.Context, args []string) error
	Withdraw(ctx context.Context, args []string) error
	Language(ctx context.Context, args []string) error
	Retry(ctx context.Context) error
	Reset(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: login, register, lang <ar|en|ru>, retry, reset, exit"
	helpSignedIn  = "Available commands: status, watch, mining, deposit <amount>, spin, withdraw-deposit, " +
		"vip, referral, invite, share, redeem <code>, withdraw [amount|max] [address] [network], " +
		"lang <ar|en|ru>, retry, reset, logout, exit"
)

// runREPL reads commands line by line from in and dispatches them to a.
// The first token is the command, the rest are its arguments. The loop
// ends on EOF or "exit"/"quit".
//
// Handler errors are not reported here; handlers print their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("adearn %s > ", statusFn()))
		line, err := readLine(in)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "status", "ads", "home":
			_ = a.Status(ctx)

		case "watch":
			_ = a.WatchAd(ctx)

		case "mining":
			_ = a.Mining(ctx)

		case "deposit":
			_ = a.Deposit(ctx, args)

		case "spin":
			_ = a.Spin(ctx)

		case "withdraw-deposit":
			_ = a.WithdrawDeposit(ctx)

		case "vip":
			_ = a.VIP(ctx)

		case "referral", "friends":
			_ = a.Referral(ctx)

		case "invite":
			_ = a.Invite(ctx)

		case "share":
			_ = a.Share(ctx)

		case "redeem":
			_ = a.Redeem(ctx, args)

		case "withdraw":
			_ = a.Withdraw(ctx, args)

		case "lang", "language":
			_ = a.Language(ctx, args)

		case "retry":
			_ = a.Retry(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
