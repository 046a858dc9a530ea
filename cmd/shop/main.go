package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/logisoltech/hitek-store/internal/cart"
	"github.com/logisoltech/hitek-store/internal/client"
	ordersvc "github.com/logisoltech/hitek-store/internal/service/order"
)

const usage = `usage: shop <command> [flags]

commands:
  list      list catalog products (-category printer|laptop)
  add       add a product to the cart (-category, -id, -quantity)
  update    change a cart line quantity (-id, -quantity)
  remove    remove a cart line (-id)
  cart      show the cart
  clear     empty the cart
  register  create an account (-email, -password, -first, -last)
  login     sign in (-email, -password)
  checkout  place an order from the cart
  orders    list your orders
`

// session is what login/register persist under ~/.hitek/session.json.
type session struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "[shop] ", 0)
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Fatalf("resolve home dir: %v", err)
	}
	stateDir := filepath.Join(home, ".hitek")

	apiURL := os.Getenv("HITEK_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	app := &app{
		logger:      logger,
		cart:        cart.New(cart.NewFileStorage(filepath.Join(stateDir, "cart.json")), logger),
		client:      client.New(apiURL),
		sessionPath: filepath.Join(stateDir, "session.json"),
	}
	if sess := app.loadSession(); sess != nil {
		app.client.SetToken(sess.Token)
		app.session = sess
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	var runErr error
	switch cmd {
	case "list":
		runErr = app.list(ctx, args)
	case "add":
		runErr = app.add(ctx, args)
	case "update":
		runErr = app.update(args)
	case "remove":
		runErr = app.remove(args)
	case "cart":
		runErr = app.showCart()
	case "clear":
		app.cart.Clear()
		fmt.Println("cart cleared")
	case "register":
		runErr = app.register(ctx, args)
	case "login":
		runErr = app.login(ctx, args)
	case "checkout":
		runErr = app.checkout(ctx, args)
	case "orders":
		runErr = app.orders(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if runErr != nil {
		logger.Fatalf("%s: %v", cmd, runErr)
	}
}

type app struct {
	logger      *log.Logger
	cart        *cart.Store
	client      *client.Client
	sessionPath string
	session     *session
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	category := fs.String("category", "printer", "printer or laptop")
	fs.Parse(args)

	products, err := a.client.Products(ctx, *category)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %.2f\t%d\n", p.ID, p.Name, p.Brand, p.Currency, float64(p.PriceCents)/100, p.Stock)
	}
	return w.Flush()
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	category := fs.String("category", "printer", "printer or laptop")
	id := fs.String("id", "", "product id")
	quantity := fs.Int("quantity", 1, "quantity")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	p, err := a.client.Product(ctx, *category, *id)
	if err != nil {
		return err
	}
	a.cart.Add(cart.Item{ID: p.ID, Name: p.Name, Price: float64(p.PriceCents) / 100}, *quantity)
	fmt.Printf("added %s x%d\n", p.Name, *quantity)
	return nil
}

func (a *app) update(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	quantity := fs.Int("quantity", 1, "quantity")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	a.cart.UpdateQuantity(*id, *quantity)
	return a.showCart()
}

func (a *app) remove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	a.cart.Remove(*id)
	return a.showCart()
}

func (a *app) showCart() error {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tLINE TOTAL")
	for _, l := range lines {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%.2f\n", l.ID, l.Name, l.Price, l.Quantity, l.Price*float64(l.Quantity))
	}
	fmt.Fprintf(w, "\t\t\tsubtotal\t%.2f\n", a.cart.Subtotal())
	return w.Flush()
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("-email and -password are required")
	}

	u, sess, err := a.client.Register(ctx, client.RegisterInput{
		Email:     *email,
		Password:  *password,
		FirstName: *first,
		LastName:  *last,
	})
	if err != nil {
		return err
	}
	if err := a.saveSession(u, sess); err != nil {
		return err
	}
	fmt.Printf("registered and signed in as %s\n", u.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("-email and -password are required")
	}

	u, sess, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.saveSession(u, sess); err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", u.Email)
	return nil
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	address := fs.String("address", "", "shipping address")
	payment := fs.String("payment", "cash_on_delivery", "payment method")
	notes := fs.String("notes", "", "order notes")
	fs.Parse(args)

	if a.session == nil {
		return fmt.Errorf("sign in first with shop login")
	}
	lines := a.cart.Lines()
	if len(lines) == 0 {
		return fmt.Errorf("cart is empty")
	}

	in := ordersvc.CreateInput{
		UserID:          a.session.UserID,
		ShippingAddress: *address,
		PaymentMethod:   *payment,
		OrderNotes:      *notes,
	}
	for _, l := range lines {
		in.Items = append(in.Items, ordersvc.ItemInput{
			ProductID: l.ID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
	}
	subtotal := a.cart.Subtotal()
	in.Totals = ordersvc.Totals{Subtotal: subtotal, Total: subtotal}

	ord, err := a.client.Checkout(ctx, in)
	if err != nil {
		return err
	}
	a.cart.Clear()
	fmt.Printf("order %s placed, status %s\n", ord.ID, ord.Status)
	return nil
}

func (a *app) orders(ctx context.Context) error {
	if a.session == nil {
		return fmt.Errorf("sign in first with shop login")
	}
	orders, err := a.client.Orders(ctx, a.session.UserID)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("no orders yet")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", o.ID, o.Status, float64(o.TotalCents)/100, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (a *app) loadSession() *session {
	data, err := os.ReadFile(a.sessionPath)
	if err != nil {
		return nil
	}
	var s session
	if err := json.Unmarshal(data, &s); err != nil {
		a.logger.Printf("discarding unreadable session file: %v", err)
		return nil
	}
	if s.Token == "" {
		return nil
	}
	return &s
}

func (a *app) saveSession(u *client.AuthUser, sess *client.Session) error {
	s := session{Token: sess.Token, ExpiresAt: sess.ExpiresAt, UserID: u.ID, Email: u.Email}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.sessionPath), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(a.sessionPath, data, 0o600); err != nil {
		return err
	}
	a.client.SetToken(s.Token)
	a.session = &s
	return nil
}
