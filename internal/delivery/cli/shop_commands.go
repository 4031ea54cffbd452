package cli

import (
	"context"
	"flag"
	"fmt"

	"sweetshop/internal/domain/entity"
	"sweetshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func parseID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, errors.New("-id flag is required")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid id %q", raw)
	}

	return id, nil
}

func (a *App) runSweets(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sweets", flag.ContinueOnError)
	name := fs.String("name", "", "Filter by name substring")
	category := fs.String("category", "", "Filter by category")
	minPrice := fs.Float64("min", 0, "Minimum price")
	maxPrice := fs.Float64("max", 0, "Maximum price")
	sortBy := fs.String("sort", "", "Sort order: price, -price, name, -name, stock or -stock")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse sweets flags")
	}

	var order usecase.SortOrder
	switch *sortBy {
	case "":
		order = usecase.SortNone
	case "price":
		order = usecase.SortPriceAsc
	case "-price":
		order = usecase.SortPriceDesc
	case "name":
		order = usecase.SortNameAsc
	case "-name":
		order = usecase.SortNameDesc
	case "stock":
		order = usecase.SortQuantityAsc
	case "-stock":
		order = usecase.SortQuantityDesc
	default:
		return errors.Errorf("unknown sort order %q", *sortBy)
	}

	sweets, err := a.catalog.Browse(ctx, entity.SweetFilter{
		Name:     *name,
		Category: *category,
		MinPrice: *minPrice,
		MaxPrice: *maxPrice,
	}, order)
	if err != nil {
		return err
	}

	a.renderSweets(sweets)

	return nil
}

func (a *App) runSweet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sweet", flag.ContinueOnError)
	rawID := fs.String("id", "", "Sweet ID")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse sweet flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	sweet, err := a.catalog.Sweet(ctx, id)
	if err != nil {
		return err
	}

	a.renderSweet(sweet)

	return nil
}

func (a *App) runCategories(ctx context.Context) error {
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(a.out, "No categories yet.")

		return nil
	}
	for _, category := range categories {
		fmt.Fprintln(a.out, category)
	}

	return nil
}

func (a *App) runPurchase(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("purchase", flag.ContinueOnError)
	rawID := fs.String("id", "", "Sweet ID")
	qty := fs.Int("qty", 1, "Quantity to buy")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse purchase flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	sweet, err := a.catalog.Purchase(ctx, id, *qty)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Purchased %d x %s. %d left in stock.\n", *qty, sweet.Name, sweet.Quantity)

	return nil
}

func (a *App) runCart(ctx context.Context) error {
	a.cart.Sync(ctx)
	a.renderCart(a.cart.Items(), a.cart.TotalItems(), a.cart.TotalPrice())

	return nil
}

func (a *App) runCartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	rawID := fs.String("id", "", "Sweet ID")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse add flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	if err := a.cart.AddToCart(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added. Cart holds %d item(s), total %s.\n",
		a.cart.TotalItems(), money(a.cart.TotalPrice()))

	return nil
}

func (a *App) runCartRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	rawID := fs.String("id", "", "Sweet ID")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse remove flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	if err := a.cart.RemoveFromCart(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Removed. Cart holds %d item(s).\n", a.cart.TotalItems())

	return nil
}

func (a *App) runCartQuantity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("quantity", flag.ContinueOnError)
	rawID := fs.String("id", "", "Sweet ID")
	qty := fs.Int("qty", 0, "New quantity (0 removes the line)")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse quantity flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	if err := a.cart.UpdateQuantity(ctx, id, *qty); err != nil {
		return err
	}

	a.renderCart(a.cart.Items(), a.cart.TotalItems(), a.cart.TotalPrice())

	return nil
}

func (a *App) runCartClear(ctx context.Context) error {
	if err := a.cart.ClearCart(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Cart cleared.")

	return nil
}

func (a *App) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	card := fs.String("card", "", "Card number (16 digits)")
	holder := fs.String("holder", "", "Card holder name")
	month := fs.Int("month", 0, "Expiry month (1-12)")
	year := fs.Int("year", 0, "Expiry year")
	cvv := fs.String("cvv", "", "Card CVV")
	address := fs.String("address", "", "Shipping address")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse checkout flags")
	}

	var input *usecase.CheckoutInput
	if *card != "" || *holder != "" || *cvv != "" {
		input = &usecase.CheckoutInput{
			CardNumber:      *card,
			CardHolder:      *holder,
			ExpiryMonth:     *month,
			ExpiryYear:      *year,
			CVV:             *cvv,
			ShippingAddress: *address,
		}
	}

	order, err := a.orders.Checkout(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order placed!\n\n")
	a.renderOrder(order)

	return nil
}

func (a *App) runOrders(ctx context.Context) error {
	orders, err := a.orders.Orders(ctx)
	if err != nil {
		return err
	}

	a.renderOrders(orders)

	return nil
}

func (a *App) runOrder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	rawID := fs.String("id", "", "Order ID")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse order flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	order, err := a.orders.Order(ctx, id)
	if err != nil {
		return err
	}

	a.renderOrder(order)

	return nil
}
