package cli

import (
	"context"
	"flag"
	"fmt"

	"sweetshop/internal/domain/entity"
	"sweetshop/internal/usecase"

	"github.com/pkg/errors"
)

func (a *App) runAdmin(ctx context.Context, args []string) error {
	if len(args) < 1 {
		a.printAdminUsage()

		return errors.New("missing admin subcommand")
	}

	name, rest := args[0], args[1:]

	switch name {
	case "dashboard":
		return a.runDashboard(ctx)
	case "status":
		return a.runSystemStatus(ctx)
	case "orders":
		return a.runAdminOrders(ctx, rest)
	case "order-status":
		return a.runOrderStatus(ctx, rest)
	case "order-tracking":
		return a.runOrderTracking(ctx, rest)
	case "sales":
		return a.runSalesOverview(ctx, rest)
	case "monthly":
		return a.runMonthlySales(ctx, rest)
	case "top":
		return a.runTopProducts(ctx, rest)
	case "category-sales":
		return a.runSalesByCategory(ctx, rest)
	case "customers":
		return a.runCustomers(ctx, rest)
	case "traffic":
		return a.runTraffic(ctx, rest)
	case "funnel":
		return a.runFunnel(ctx, rest)
	case "shipping":
		return a.runShipping(ctx, rest)
	case "alerts":
		return a.runAlerts(ctx, rest)
	case "inventory":
		return a.runInventory(ctx)
	case "low-stock":
		return a.runLowStock(ctx, rest)
	case "create":
		return a.runSweetCreate(ctx, rest)
	case "update":
		return a.runSweetUpdate(ctx, rest)
	case "delete":
		return a.runSweetDelete(ctx, rest)
	case "restock":
		return a.runRestock(ctx, rest)
	case "help", "-h", "--help":
		a.printAdminUsage()

		return nil
	default:
		a.printAdminUsage()

		return errors.Errorf("unknown admin subcommand %q", name)
	}
}

func (a *App) printAdminUsage() {
	fmt.Fprintln(a.out, "Usage: sweetshop admin <command> [options]")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Catalog management:")
	fmt.Fprintln(a.out, "  create          Add a sweet to the catalog")
	fmt.Fprintln(a.out, "  update          Edit a sweet")
	fmt.Fprintln(a.out, "  delete          Remove a sweet")
	fmt.Fprintln(a.out, "  restock         Increase a sweet's stock")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Orders:")
	fmt.Fprintln(a.out, "  orders          List all orders (or -recent N)")
	fmt.Fprintln(a.out, "  order-status    Move an order to a new status")
	fmt.Fprintln(a.out, "  order-tracking  Attach a tracking number")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Analytics:")
	fmt.Fprintln(a.out, "  dashboard, status, sales, monthly, top, category-sales,")
	fmt.Fprintln(a.out, "  customers, traffic, funnel, shipping, alerts, inventory, low-stock")
}

func (a *App) runDashboard(ctx context.Context) error {
	stats, err := a.admin.Dashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Users: %d total (%d admin, %d regular)\n",
		stats.TotalUsers, stats.AdminUsers, stats.RegularUsers)
	if stats.AdminEmail != "" {
		fmt.Fprintf(a.out, "Primary admin: %s\n", stats.AdminEmail)
	}

	return nil
}

func (a *App) runSystemStatus(ctx context.Context) error {
	status, err := a.admin.SystemStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Backend %s, up %s (as of %s)\n",
		status.Status, orDash(status.Uptime), shortDate(status.Timestamp))

	return nil
}

func (a *App) runAdminOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	recent := fs.Int("recent", 0, "Show only the N most recent orders")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse orders flags")
	}

	var (
		orders []*entity.Order
		err    error
	)
	if *recent > 0 {
		orders, err = a.admin.RecentOrders(ctx, *recent)
	} else {
		orders, err = a.admin.AllOrders(ctx)
	}
	if err != nil {
		return err
	}

	a.renderOrders(orders)

	return nil
}

func (a *App) runOrderStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order-status", flag.ContinueOnError)
	rawID := fs.String("id", "", "Order ID")
	status := fs.String("status", "", "New status (PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELLED)")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse order-status flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	order, err := a.admin.UpdateOrderStatus(ctx, id, entity.OrderStatus(*status))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order %s is now %s.\n", order.ID, order.Status)

	return nil
}

func (a *App) runOrderTracking(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order-tracking", flag.ContinueOnError)
	rawID := fs.String("id", "", "Order ID")
	tracking := fs.String("tracking", "", "Carrier tracking number")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse order-tracking flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	order, err := a.admin.UpdateOrderTracking(ctx, id, *tracking)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order %s tracking set to %s.\n", order.ID, order.TrackingNumber)

	return nil
}

func rangeFlag(fs *flag.FlagSet) *string {
	return fs.String("range", "30d", "Analytics range, e.g. 7d, 30d, 90d")
}

func (a *App) runSalesOverview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sales", flag.ContinueOnError)
	rng := rangeFlag(fs)
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse sales flags")
	}

	overview, err := a.admin.SalesOverview(ctx, *rng)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Sales over %s\n", *rng)
	fmt.Fprintf(a.out, "  Revenue:     %s (%+.1f%%)\n", money(overview.TotalRevenue), overview.RevenueGrowth)
	fmt.Fprintf(a.out, "  Orders:      %d (%+.1f%%)\n", overview.TotalOrders, overview.OrdersGrowth)
	fmt.Fprintf(a.out, "  Avg order:   %s (%+.1f%%)\n", money(overview.AverageOrderValue), overview.AvgOrderGrowth)
	fmt.Fprintf(a.out, "  Conversion:  %s (%+.1f%%)\n", percent(overview.ConversionRate), overview.ConversionGrowth)

	return nil
}

func (a *App) runMonthlySales(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("monthly", flag.ContinueOnError)
	months := fs.Int("months", 6, "Number of months to show")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse monthly flags")
	}

	sales, err := a.admin.MonthlySales(ctx, *months)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(sales))
	for _, m := range sales {
		rows = append(rows, []string{
			m.Month, money(m.Revenue), fmt.Sprintf("%d", m.Orders), fmt.Sprintf("%+.1f%%", m.Growth),
		})
	}
	a.table([]string{"MONTH", "REVENUE", "ORDERS", "GROWTH"}, rows)

	return nil
}

func (a *App) runTopProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("top", flag.ContinueOnError)
	limit := fs.Int("limit", 10, "Number of products to show")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse top flags")
	}

	products, err := a.admin.TopProducts(ctx, *limit)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.Name, p.Category, fmt.Sprintf("%d", p.UnitsSold),
			money(p.Revenue), fmt.Sprintf("%d", p.Stock),
		})
	}
	a.table([]string{"PRODUCT", "CATEGORY", "SOLD", "REVENUE", "STOCK"}, rows)

	return nil
}

func (a *App) runSalesByCategory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("category-sales", flag.ContinueOnError)
	rng := rangeFlag(fs)
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse category-sales flags")
	}

	sales, err := a.admin.SalesByCategory(ctx, *rng)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(sales))
	for _, c := range sales {
		rows = append(rows, []string{
			c.Category, money(c.Revenue), percent(c.Percentage), fmt.Sprintf("%d", c.UnitsSold),
		})
	}
	a.table([]string{"CATEGORY", "REVENUE", "SHARE", "SOLD"}, rows)

	return nil
}

func (a *App) runCustomers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("customers", flag.ContinueOnError)
	rng := rangeFlag(fs)
	segments := fs.Bool("segments", false, "Show the segmentation breakdown")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse customers flags")
	}

	if *segments {
		buckets, err := a.admin.CustomerSegments(ctx, *rng)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(buckets))
		for _, s := range buckets {
			rows = append(rows, []string{s.Segment, fmt.Sprintf("%d", s.Count), money(s.AvgOrderValue)})
		}
		a.table([]string{"SEGMENT", "CUSTOMERS", "AVG ORDER"}, rows)

		return nil
	}

	summary, err := a.admin.CustomerSummary(ctx, *rng)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Customers over %s\n", *rng)
	fmt.Fprintf(a.out, "  Total:     %d (%d new, %d returning)\n",
		summary.TotalCustomers, summary.NewCustomers, summary.ReturningCustomers)
	fmt.Fprintf(a.out, "  Avg value: %s\n", money(summary.AverageCustomerValue))
	fmt.Fprintf(a.out, "  Retention: %s\n", percent(summary.CustomerRetentionRate))

	return nil
}

func (a *App) runTraffic(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("traffic", flag.ContinueOnError)
	rng := rangeFlag(fs)
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse traffic flags")
	}

	traffic, err := a.admin.Traffic(ctx, *rng)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Traffic over %s\n", *rng)
	fmt.Fprintf(a.out, "  Visits:        %d (%d unique)\n", traffic.TotalVisits, traffic.UniqueVisitors)
	fmt.Fprintf(a.out, "  Page views:    %d\n", traffic.PageViews)
	fmt.Fprintf(a.out, "  Bounce rate:   %s\n", percent(traffic.BounceRate))
	fmt.Fprintf(a.out, "  Avg session:   %s\n", orDash(traffic.AvgSessionDuration))

	return nil
}

func (a *App) runFunnel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("funnel", flag.ContinueOnError)
	rng := rangeFlag(fs)
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse funnel flags")
	}

	funnel, err := a.admin.ConversionFunnel(ctx, *rng)
	if err != nil {
		return err
	}

	a.table([]string{"STAGE", "USERS"}, [][]string{
		{"Visitors", fmt.Sprintf("%d", funnel.Visitors)},
		{"Product views", fmt.Sprintf("%d", funnel.ProductViews)},
		{"Added to cart", fmt.Sprintf("%d", funnel.AddToCart)},
		{"Checkout", fmt.Sprintf("%d", funnel.Checkout)},
		{"Completed", fmt.Sprintf("%d", funnel.Completed)},
	})

	return nil
}

func (a *App) runShipping(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("shipping", flag.ContinueOnError)
	rng := rangeFlag(fs)
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse shipping flags")
	}

	metrics, err := a.admin.ShippingMetrics(ctx, *rng)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Shipping over %s\n", *rng)
	fmt.Fprintf(a.out, "  Avg time:        %s\n", orDash(metrics.AvgShippingTime))
	fmt.Fprintf(a.out, "  On time:         %s\n", percent(metrics.OnTimeDelivery))
	fmt.Fprintf(a.out, "  Avg cost:        %s\n", money(metrics.ShippingCost))
	fmt.Fprintf(a.out, "  Free threshold:  %s\n", money(metrics.FreeShippingThreshold))

	return nil
}

func (a *App) runAlerts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alerts", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "Number of alerts to show")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse alerts flags")
	}

	alerts, err := a.admin.Alerts(ctx, *limit)
	if err != nil {
		return err
	}

	if len(alerts) == 0 {
		fmt.Fprintln(a.out, "No alerts.")

		return nil
	}

	rows := make([][]string, 0, len(alerts))
	for _, alert := range alerts {
		rows = append(rows, []string{shortDate(alert.CreatedAt), alert.Severity, alert.Message})
	}
	a.table([]string{"WHEN", "SEVERITY", "MESSAGE"}, rows)

	return nil
}

func (a *App) runInventory(ctx context.Context) error {
	status, err := a.admin.InventoryStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Inventory: %d products, value %s\n", status.TotalProducts, money(status.TotalStockValue))
	fmt.Fprintf(a.out, "  In stock:     %d\n", status.InStock)
	fmt.Fprintf(a.out, "  Low stock:    %d\n", status.LowStock)
	fmt.Fprintf(a.out, "  Out of stock: %d\n", status.OutOfStock)

	return nil
}

func (a *App) runLowStock(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("low-stock", flag.ContinueOnError)
	threshold := fs.Int("threshold", 5, "Stock level treated as low")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse low-stock flags")
	}

	items, err := a.admin.LowStock(ctx, *threshold)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing below the threshold.")

		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID.String(), item.Name, item.Category, fmt.Sprintf("%d", item.Quantity),
		})
	}
	a.table([]string{"ID", "NAME", "CATEGORY", "LEFT"}, rows)

	return nil
}

func sweetFlags(fs *flag.FlagSet) (name, category *string, price *float64, qty *int, description, image *string) {
	name = fs.String("name", "", "Product name")
	category = fs.String("category", "", "Category label")
	price = fs.Float64("price", 0, "Unit price")
	qty = fs.Int("qty", 0, "Initial stock")
	description = fs.String("description", "", "Marketing copy")
	image = fs.String("image", "", "Image URL")

	return
}

func (a *App) runSweetCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	name, category, price, qty, description, image := sweetFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse create flags")
	}

	sweet, err := a.catalog.Create(ctx, usecase.CreateSweetInput{
		Name:        *name,
		Category:    *category,
		Price:       *price,
		Quantity:    *qty,
		Description: *description,
		Image:       *image,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created %s (%s).\n", sweet.Name, sweet.ID)

	return nil
}

func (a *App) runSweetUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	rawID := fs.String("id", "", "Sweet ID")
	name, category, price, qty, description, image := sweetFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse update flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	sweet, err := a.catalog.Update(ctx, id, usecase.UpdateSweetInput{
		Name:        *name,
		Category:    *category,
		Price:       *price,
		Quantity:    *qty,
		Description: *description,
		Image:       *image,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Updated.")
	a.renderSweet(sweet)

	return nil
}

func (a *App) runSweetDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	rawID := fs.String("id", "", "Sweet ID")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse delete flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	if err := a.catalog.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Deleted.")

	return nil
}

func (a *App) runRestock(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("restock", flag.ContinueOnError)
	rawID := fs.String("id", "", "Sweet ID")
	qty := fs.Int("qty", 0, "Units to add")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse restock flags")
	}

	id, err := parseID(*rawID)
	if err != nil {
		return err
	}

	sweet, err := a.catalog.Restock(ctx, id, *qty)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Restocked %s to %d units.\n", sweet.Name, sweet.Quantity)

	return nil
}
