package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"bistro/internal/api"
	"bistro/internal/config"
	"bistro/internal/dashboard"
	"bistro/internal/domain"
	"bistro/internal/push"
)

func main() {
	base := config.BackendURL()
	client := api.NewClient(base)

	// initial snapshot; like the admin page, a failed fetch degrades to an
	// empty dashboard instead of aborting
	initial, err := client.List(context.Background(), "")
	if err != nil {
		log.Printf("fetching orders: %v", err)
		initial = nil
	}

	col := dashboard.NewCollection(initial, client, func(kind, message string) {
		fmt.Printf("\n>> [%s] %s\n", kind, message)
	})

	p, err := push.Dial(config.PushURL(base))
	if err != nil {
		log.Printf("push connect: %v", err)
	} else {
		defer p.Close()
		if err := p.Emit(push.EventJoinAdmin, nil); err != nil {
			log.Printf("join admin room: %v", err)
		}
		col.Bind(p)
		defer col.Unbind(p)
	}

	filter := dashboard.FilterAll
	in := bufio.NewScanner(os.Stdin)
	fmt.Println("Admin dashboard. Commands: list, filter <status|all>, stats, set <id> <status>, conn, quit")
	for {
		fmt.Print("admin> ")
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "list":
			printOrders(col.Filter(filter))
		case "filter":
			if len(fields) != 2 || !validFilter(fields[1]) {
				fmt.Println("usage: filter <placed|confirmed|preparing|completed|all>")
				continue
			}
			filter = fields[1]
			printOrders(col.Filter(filter))
		case "stats":
			st := col.Stats()
			fmt.Printf("total %d | placed %d | confirmed %d | preparing %d | completed %d\n",
				st.Total, st.Placed, st.Confirmed, st.Preparing, st.Completed)
		case "set":
			if len(fields) != 3 || !domain.ValidStatus(domain.OrderStatus(fields[2])) {
				fmt.Println("usage: set <id> <placed|confirmed|preparing|completed>")
				continue
			}
			id, ok := resolveID(col, fields[1])
			if !ok {
				fmt.Println("no such order")
				continue
			}
			// no local change here: the orderUpdated push event is the
			// source of truth for the visible status
			if err := col.SetStatus(context.Background(), id, domain.OrderStatus(fields[2])); err != nil {
				log.Printf("updating order status: %v", err)
				fmt.Println("Failed to update order status")
			}
		case "conn":
			if p != nil && p.Connected() {
				fmt.Println("Connected - real-time updates active")
			} else {
				fmt.Println("Disconnected - no live updates")
			}
		case "quit":
			return
		default:
			fmt.Println("unknown command")
		}
	}
}

func validFilter(s string) bool {
	return s == dashboard.FilterAll || domain.ValidStatus(domain.OrderStatus(s))
}

// resolveID accepts a full order id or an unambiguous short suffix
func resolveID(col *dashboard.Collection, arg string) (string, bool) {
	match := ""
	for _, o := range col.Orders() {
		if o.ID == arg {
			return arg, true
		}
		if strings.HasSuffix(strings.ToUpper(o.ID), strings.ToUpper(arg)) {
			if match != "" {
				return "", false
			}
			match = o.ID
		}
	}
	return match, match != ""
}

func printOrders(orders []domain.Order) {
	if len(orders) == 0 {
		fmt.Println("no orders found")
		return
	}
	for _, o := range orders {
		fmt.Printf("%s  %-12s %-10s $%7.2f  %s\n",
			shortID(o.ID), o.CustomerName, o.Status, o.TotalAmount, o.CreatedAt.Local().Format("Jan 2 15:04"))
		for _, it := range o.Items {
			fmt.Printf("        %dx %s  $%.2f\n", it.Quantity, it.Name, it.Price*float64(it.Quantity))
		}
	}
}

func shortID(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}
