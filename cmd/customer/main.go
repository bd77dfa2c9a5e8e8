package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"bistro/internal/api"
	"bistro/internal/cart"
	"bistro/internal/config"
	"bistro/internal/domain"
	"bistro/internal/menu"
	"bistro/internal/push"
	"bistro/internal/tracking"
)

// view states of the customer app; the only transitions are
// composing -> success (submit), success -> composing, success -> tracking
// and composing -> tracking (explicit track command)
type viewState int

const (
	stateComposing viewState = iota
	stateSuccess
	stateTracking
)

type app struct {
	in       *bufio.Scanner
	base     string
	client   *api.Client
	composer *cart.Composer
	state    viewState
	lastName string // customer of the last submitted order, default for track
}

func main() {
	base := config.BackendURL()
	a := &app{
		in:     bufio.NewScanner(os.Stdin),
		base:   base,
		client: api.NewClient(base),
	}
	a.composer = cart.NewComposer(a.client)

	fmt.Println("Welcome to Bistro! Type 'help' for commands.")
	for {
		switch a.state {
		case stateComposing:
			if !a.composing() {
				return
			}
		case stateSuccess:
			if !a.success() {
				return
			}
		case stateTracking:
			a.tracking()
			a.state = stateComposing
		}
	}
}

func (a *app) prompt(p string) (string, bool) {
	fmt.Print(p)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) composing() bool {
	line, ok := a.prompt("order> ")
	if !ok {
		return false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	switch fields[0] {
	case "help":
		fmt.Println("menu                 show the menu")
		fmt.Println("add <id>             add a menu item to your order")
		fmt.Println("qty <id> <n>         set quantity (0 or invalid removes)")
		fmt.Println("rm <id>              remove an item")
		fmt.Println("name <your name>     set your name")
		fmt.Println("cart                 show your order")
		fmt.Println("submit               place the order")
		fmt.Println("track [name]         follow your orders")
		fmt.Println("quit                 exit")
	case "menu":
		for _, it := range menu.Items {
			fmt.Printf("  %d. %-18s $%.2f\n", it.ID, it.Name, it.Price)
		}
	case "add":
		if len(fields) != 2 {
			fmt.Println("usage: add <id>")
			return true
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			fmt.Println("usage: add <id>")
			return true
		}
		it, ok := menu.ByID(id)
		if !ok {
			fmt.Println("no such menu item")
			return true
		}
		a.composer.Cart.Add(it)
		fmt.Printf("added %s\n", it.Name)
	case "qty":
		if len(fields) != 3 {
			fmt.Println("usage: qty <id> <n>")
			return true
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			fmt.Println("usage: qty <id> <n>")
			return true
		}
		a.composer.Cart.SetQuantity(id, fields[2])
	case "rm":
		if len(fields) != 2 {
			fmt.Println("usage: rm <id>")
			return true
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			fmt.Println("usage: rm <id>")
			return true
		}
		a.composer.Cart.Remove(id)
	case "name":
		a.composer.CustomerName = strings.TrimSpace(strings.TrimPrefix(line, "name"))
	case "cart":
		a.printCart()
	case "submit":
		a.submit()
	case "track":
		if len(fields) > 1 {
			a.lastName = strings.TrimSpace(strings.TrimPrefix(line, "track"))
		}
		a.state = stateTracking
	case "quit":
		return false
	default:
		fmt.Println("unknown command; type 'help'")
	}
	return true
}

func (a *app) printCart() {
	entries := a.composer.Cart.Entries()
	if len(entries) == 0 {
		fmt.Println("your order is empty")
		return
	}
	for _, e := range entries {
		fmt.Printf("  %dx %-18s $%.2f\n", e.Quantity, e.Item.Name, e.Item.Price*float64(e.Quantity))
	}
	fmt.Printf("  total: $%.2f\n", a.composer.Cart.Total())
}

func (a *app) submit() {
	if a.composer.Submitting() {
		return
	}
	o, err := a.composer.Submit(context.Background())
	switch {
	case err == cart.ErrInvalidInput:
		fmt.Println("Please fill in your name and select at least one item")
	case err != nil:
		log.Printf("placing order: %v", err)
		fmt.Println("Failed to place order. Please try again.")
	default:
		a.lastName = o.CustomerName
		a.state = stateSuccess
	}
}

func (a *app) success() bool {
	fmt.Println("Order placed successfully! Thank you for your order.")
	for {
		line, ok := a.prompt("again | track | quit > ")
		if !ok {
			return false
		}
		switch line {
		case "again":
			a.state = stateComposing
			return true
		case "track":
			a.state = stateTracking
			return true
		case "quit":
			return false
		}
	}
}

func (a *app) tracking() {
	name := a.lastName
	if name == "" {
		var ok bool
		name, ok = a.prompt("Your name: ")
		if !ok || name == "" {
			return
		}
	}

	t := tracking.NewTracker(name, a.client, func(msg string) {
		fmt.Printf("\n>> %s\n", msg)
	})

	fmt.Println("Loading your orders...")
	if err := t.Load(context.Background()); err != nil {
		log.Printf("fetching orders: %v", err)
		fmt.Println("Failed to load your orders. Please try again.")
		return
	}
	if t.Empty() {
		fmt.Printf("No orders found for %s. Place an order to track it here!\n", name)
		return
	}

	// live updates are best effort; without the push channel the view still
	// works, it just never refreshes on its own
	p, err := push.Dial(config.PushURL(a.base))
	if err != nil {
		log.Printf("push connect: %v", err)
	} else {
		defer p.Close()
		if err := t.Bind(p); err != nil {
			log.Printf("join order room: %v", err)
		}
		defer t.Unbind(p)
	}

	for {
		renderOrders(t, p != nil && p.Connected())
		line, ok := a.prompt("track (enter to refresh, back to return)> ")
		if !ok || line == "back" {
			return
		}
	}
}

func renderOrders(t *tracking.Tracker, connected bool) {
	if connected {
		fmt.Println("[live updates active]")
	} else {
		fmt.Println("[no live updates]")
	}
	for _, o := range t.Orders() {
		idx := domain.StatusIndex(o.Status)
		fmt.Printf("\nOrder #%s — $%.2f — %s\n", shortID(o.ID), o.TotalAmount, o.CreatedAt.Local().Format("Jan 2 15:04"))
		for i, step := range domain.StatusSteps {
			mark := " "
			if i <= idx {
				mark = "x"
			}
			fmt.Printf("  [%s] %s\n", mark, step.Label)
		}
		for _, it := range o.Items {
			fmt.Printf("      %dx %s  $%.2f\n", it.Quantity, it.Name, it.Price*float64(it.Quantity))
		}
	}
}

func shortID(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}
