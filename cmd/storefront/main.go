// Package main provides the storefront command line client. It drives the
// same session store, signal bus, and workflows an embedded UI would,
// with navigation targets printed instead of routed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/titanstore/storefront/pkg/alert"
	"github.com/titanstore/storefront/pkg/product"
	"github.com/titanstore/storefront/pkg/storefront"
)

// Version is the client version reported by -version.
const Version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cliOptions struct {
	configPath  string
	envPath     string
	showVersion bool

	name        string
	description string
	price       string
	category    string
	imageURLs   string
}

func parseFlags() (cliOptions, []string) {
	opts := cliOptions{}
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.envPath, "env", "", "Path to .env file")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	flag.StringVar(&opts.name, "name", "", "Product name (create)")
	flag.StringVar(&opts.description, "description", "", "Product description (create)")
	flag.StringVar(&opts.price, "price", "", "Product price (create)")
	flag.StringVar(&opts.category, "category", "", "Product category (create)")
	flag.StringVar(&opts.imageURLs, "images", "", "Comma-separated image URLs (create)")
	flag.Parse()
	return opts, flag.Args()
}

func setupSignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// consoleNavigator prints navigation targets; an embedding host would
// route instead.
type consoleNavigator struct{}

func (consoleNavigator) NavigateTo(path string) {
	fmt.Printf("navigate: %s\n", path)
}

// stderrAlerter surfaces user-visible notices on stderr.
var stderrAlerter = alert.Func(func(kind alert.Kind, message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", kind, message)
})

func loadConfig(opts cliOptions) (*storefront.Config, error) {
	if opts.envPath != "" {
		if err := godotenv.Load(opts.envPath); err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	} else {
		// Default .env is optional.
		_ = godotenv.Load()
	}

	if opts.configPath == "" {
		return storefront.DefaultConfig(), nil
	}
	return storefront.LoadConfig(opts.configPath)
}

func run() error {
	opts, args := parseFlags()

	if opts.showVersion {
		fmt.Printf("storefront version %s\n", Version)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := cfg.Logging.NewLogger(os.Stderr)

	sf, err := storefront.New(
		storefront.WithConfig(cfg),
		storefront.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer sf.Close()

	ctx, stop := setupSignalContext()
	defer stop()

	action := "whoami"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "whoami":
		return runWhoami(ctx, sf)
	case "login":
		return runLogin(ctx, sf, args[1:])
	case "logout":
		return runLogout(ctx, sf)
	case "admin":
		return runAdmin(ctx, sf)
	case "search":
		return runSearch(ctx, sf, args[1:])
	case "create":
		return runCreate(ctx, sf, opts)
	}
	return fmt.Errorf("unknown action %q", action)
}

func runWhoami(ctx context.Context, sf *storefront.Storefront) error {
	ctrl := sf.NewAuthController(consoleNavigator{}, stderrAlerter)
	ctrl.Recompute(ctx)

	if !ctrl.Authenticated() {
		fmt.Println("not logged in")
		return nil
	}

	user := ctrl.User()
	if user == nil {
		fmt.Println("logged in (profile unavailable)")
		return nil
	}

	fmt.Printf("First Name: %s\n", user.FirstName)
	fmt.Printf("Last Name: %s\n", user.LastName)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Account Balance: %.2f\n", user.AccountBalance)
	fmt.Printf("Role: %s\n", user.Role)
	return nil
}

// runLogin completes a login with a token and user id obtained from the
// login surface (out of band for the CLI).
func runLogin(ctx context.Context, sf *storefront.Storefront, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: storefront login <token> <user-id>")
	}
	if err := sf.CompleteLogin(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("logged in")
	return nil
}

func runLogout(ctx context.Context, sf *storefront.Storefront) error {
	ctrl := sf.NewAuthController(consoleNavigator{}, stderrAlerter)
	ctrl.Logout(ctx)
	fmt.Println("logged out")
	return nil
}

func runAdmin(ctx context.Context, sf *storefront.Storefront) error {
	ctrl := sf.NewAuthController(consoleNavigator{}, stderrAlerter)
	ctrl.Recompute(ctx)
	return ctrl.OpenAdminDashboard()
}

func runSearch(ctx context.Context, sf *storefront.Storefront, args []string) error {
	ctrl := sf.NewAuthController(consoleNavigator{}, stderrAlerter)
	ctrl.Recompute(ctx)
	ctrl.Search(strings.Join(args, " "))
	return nil
}

func runCreate(ctx context.Context, sf *storefront.Storefront, opts cliOptions) error {
	wf := sf.NewProductWorkflow(func() {
		fmt.Println("product listing refreshed")
	}, stderrAlerter)

	fields := []struct {
		field product.Field
		value string
	}{
		{product.FieldName, opts.name},
		{product.FieldDescription, opts.description},
		{product.FieldPrice, opts.price},
		{product.FieldCategory, opts.category},
		{product.FieldImageURLs, opts.imageURLs},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := wf.UpdateField(f.field, f.value); err != nil {
			return err
		}
	}

	return wf.Submit(ctx)
}
