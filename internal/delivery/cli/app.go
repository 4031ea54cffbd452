// Package cli renders the storefront as terminal commands. It is the
// only layer that prints; everything below it returns entities and
// errors.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// App dispatches storefront subcommands.
type App struct {
	out     io.Writer
	logger  *slog.Logger
	auth    usecase.AuthUsecase
	catalog usecase.CatalogUsecase
	cart    usecase.CartUsecase
	orders  usecase.OrderUsecase
	admin   usecase.AdminUsecase
}

// Params holds dependencies for the CLI app, injected by Fx.
type Params struct {
	fx.In

	Logger  *slog.Logger
	Auth    usecase.AuthUsecase
	Catalog usecase.CatalogUsecase
	Cart    usecase.CartUsecase
	Orders  usecase.OrderUsecase
	Admin   usecase.AdminUsecase
}

// NewApp is the constructor for App.
func NewApp(params Params) *App {
	return &App{
		out:     os.Stdout,
		logger:  params.Logger,
		auth:    params.Auth,
		catalog: params.Catalog,
		cart:    params.Cart,
		orders:  params.Orders,
		admin:   params.Admin,
	}
}

// Run executes one subcommand. args is os.Args[1:].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		a.printUsage()

		return errors.New("missing subcommand")
	}

	name, rest := args[0], args[1:]

	switch name {
	// Account
	case "register":
		return a.runRegister(ctx, rest)
	case "login":
		return a.runLogin(ctx, rest)
	case "logout":
		return a.runLogout(ctx)
	case "whoami":
		return a.runWhoami()
	case "profile":
		return a.runProfile(ctx, rest)

	// Catalog
	case "sweets":
		return a.runSweets(ctx, rest)
	case "sweet":
		return a.runSweet(ctx, rest)
	case "categories":
		return a.runCategories(ctx)
	case "purchase":
		return a.runPurchase(ctx, rest)

	// Cart
	case "cart":
		return a.runCart(ctx)
	case "add":
		return a.runCartAdd(ctx, rest)
	case "remove":
		return a.runCartRemove(ctx, rest)
	case "quantity":
		return a.runCartQuantity(ctx, rest)
	case "clear":
		return a.runCartClear(ctx)

	// Orders
	case "checkout":
		return a.runCheckout(ctx, rest)
	case "orders":
		return a.runOrders(ctx)
	case "order":
		return a.runOrder(ctx, rest)

	// Admin
	case "admin":
		return a.runAdmin(ctx, rest)

	case "help", "-h", "--help":
		a.printUsage()

		return nil
	default:
		a.printUsage()

		return errors.Errorf("unknown subcommand %q", name)
	}
}

// ReportError renders one failure as a user-facing banner and logs the
// full chain for debugging.
func (a *App) ReportError(err error) {
	info := domainerrors.Describe(err)

	fmt.Fprintf(os.Stderr, "error: %s", info.Message)
	if info.Details != "" {
		fmt.Fprintf(os.Stderr, " (%s)", info.Details)
	}
	fmt.Fprintln(os.Stderr)

	a.logger.Debug("command failed", slog.String("code", info.Code), slog.Any("error", err))
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, "Usage: sweetshop <command> [options]")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Account:")
	fmt.Fprintln(a.out, "  register    Create an account")
	fmt.Fprintln(a.out, "  login       Sign in and store the session")
	fmt.Fprintln(a.out, "  logout      Sign out and clear the session")
	fmt.Fprintln(a.out, "  whoami      Show the signed-in account")
	fmt.Fprintln(a.out, "  profile     Show or update the profile")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Catalog:")
	fmt.Fprintln(a.out, "  sweets      Browse the catalog")
	fmt.Fprintln(a.out, "  sweet       Show one product")
	fmt.Fprintln(a.out, "  categories  List categories")
	fmt.Fprintln(a.out, "  purchase    Buy directly, bypassing the cart")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Cart and orders:")
	fmt.Fprintln(a.out, "  cart        Show the cart")
	fmt.Fprintln(a.out, "  add         Add a sweet to the cart")
	fmt.Fprintln(a.out, "  remove      Remove a sweet from the cart")
	fmt.Fprintln(a.out, "  quantity    Set a cart line's quantity")
	fmt.Fprintln(a.out, "  clear       Empty the cart")
	fmt.Fprintln(a.out, "  checkout    Place an order from the cart")
	fmt.Fprintln(a.out, "  orders      List your orders")
	fmt.Fprintln(a.out, "  order       Show one order")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Admin:")
	fmt.Fprintln(a.out, "  admin       Back-office commands (see 'sweetshop admin help')")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Use 'sweetshop <command> -h' for more information about a command.")
}
