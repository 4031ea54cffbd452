package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"sweetshop/internal/domain/entity"
)

// table writes aligned columns to the app's output.
func (a *App) table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func shortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format("2006-01-02 15:04")
}

func stockLabel(s *entity.Sweet) string {
	if !s.InStock() {
		return "out of stock"
	}

	return fmt.Sprintf("%d", s.Quantity)
}

func (a *App) renderSweets(sweets []*entity.Sweet) {
	if len(sweets) == 0 {
		fmt.Fprintln(a.out, "No sweets found.")

		return
	}

	rows := make([][]string, 0, len(sweets))
	for _, s := range sweets {
		rows = append(rows, []string{
			s.ID.String(), s.Name, s.Category, money(s.Price), stockLabel(s),
		})
	}
	a.table([]string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK"}, rows)
}

func (a *App) renderSweet(s *entity.Sweet) {
	fmt.Fprintf(a.out, "%s (%s)\n", s.Name, s.Category)
	fmt.Fprintf(a.out, "  ID:    %s\n", s.ID)
	fmt.Fprintf(a.out, "  Price: %s\n", money(s.Price))
	fmt.Fprintf(a.out, "  Stock: %s\n", stockLabel(s))
	if s.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", s.Description)
	}
}

func (a *App) renderCart(items []*entity.CartItem, totalItems int, totalPrice float64) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")

		return
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.SweetID.String(), item.Name, money(item.Price),
			fmt.Sprintf("%d", item.Quantity), money(item.LineTotal()),
		})
	}
	a.table([]string{"SWEET", "NAME", "PRICE", "QTY", "TOTAL"}, rows)
	fmt.Fprintf(a.out, "\n%d item(s), total %s\n", totalItems, money(totalPrice))
}

func (a *App) renderOrders(orders []*entity.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")

		return
	}

	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.ID.String(), shortDate(o.OrderDate), string(o.Status),
			money(o.TotalAmount), orDash(o.TrackingNumber),
		})
	}
	a.table([]string{"ID", "DATE", "STATUS", "TOTAL", "TRACKING"}, rows)
}

func (a *App) renderOrder(o *entity.Order) {
	fmt.Fprintf(a.out, "Order %s\n", o.ID)
	fmt.Fprintf(a.out, "  Placed:   %s\n", shortDate(o.OrderDate))
	fmt.Fprintf(a.out, "  Status:   %s\n", o.Status)
	if o.TrackingNumber != "" {
		fmt.Fprintf(a.out, "  Tracking: %s\n", o.TrackingNumber)
	}
	fmt.Fprintln(a.out)

	rows := make([][]string, 0, len(o.Items))
	for _, item := range o.Items {
		rows = append(rows, []string{
			item.Name, money(item.Price), fmt.Sprintf("%d", item.Quantity),
			money(item.Price * float64(item.Quantity)),
		})
	}
	a.table([]string{"ITEM", "PRICE", "QTY", "TOTAL"}, rows)
	fmt.Fprintf(a.out, "\nTotal %s\n", money(o.TotalAmount))
}

func (a *App) renderUser(u *entity.User) {
	fmt.Fprintf(a.out, "%s <%s>\n", u.FullName, u.Email)
	if u.Phone != "" {
		fmt.Fprintf(a.out, "  Phone:   %s\n", u.Phone)
	}
	if u.Address != "" {
		fmt.Fprintf(a.out, "  Address: %s\n", u.Address)
	}
	if u.IsAdmin() {
		fmt.Fprintln(a.out, "  Role:    administrator")
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
