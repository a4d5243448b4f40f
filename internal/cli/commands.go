// Package cli provides the Cobra-based storefront CLI.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront-service/config"
	"storefront-service/internal/app"
	"storefront-service/internal/listing"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/service"
	"storefront-service/internal/util"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type runner struct {
	v *viper.Viper
	a *app.App

	// set when the app was injected and must not be closed by the command
	injected bool
}

// NewRootCmd builds the command tree. A non-nil a is used as is; otherwise
// each invocation builds and closes its own app from config and flags.
func NewRootCmd(a *app.App) *cobra.Command {
	_, root := newRoot(a)
	return root
}

func newRoot(a *app.App) (*runner, *cobra.Command) {
	r := &runner{v: viper.New(), a: a, injected: a != nil}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the motorcycle catalog, manage the cart and check out",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return r.close()
		},
	}

	root.PersistentFlags().String("config", "", "config file")
	root.PersistentFlags().String("store", "", "store backend: memory|file|redis|postgres")
	root.PersistentFlags().String("store-file", "", "file store path")
	root.PersistentFlags().Int64("seed", 0, "catalog seed")
	root.PersistentFlags().String("log-mode", "quiet", "logger mode: quiet|development|production")
	root.PersistentFlags().Bool("no-delay", false, "skip the simulated delays")

	for _, name := range []string{"config", "store", "store-file", "seed", "log-mode", "no-delay"} {
		_ = r.v.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}
	r.v.SetEnvPrefix("STOREFRONT")
	r.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	r.v.AutomaticEnv()

	root.AddCommand(
		r.productsCmd(),
		r.productCmd(),
		r.offersCmd(),
		r.cartCmd(),
		r.checkoutCmd(),
		r.shellCmd(),
	)
	return r, root
}

// Execute runs the CLI with process arguments. The app is closed even when
// a command fails, which skips the post-run hook.
func Execute() error {
	r, root := newRoot(nil)
	err := root.Execute()
	return errors.Join(err, r.close())
}

func (r *runner) open(ctx context.Context) error {
	if r.a != nil {
		return nil
	}

	if file := r.v.GetString("config"); file != "" {
		r.v.SetConfigFile(file)
		if err := r.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	if err := util.InitLogger(r.v.GetString("log-mode")); err != nil {
		return err
	}

	cfg := config.Load()
	if s := r.v.GetString("store"); s != "" {
		cfg.Store.Backend = s
	}
	if f := r.v.GetString("store-file"); f != "" {
		cfg.Store.FilePath = f
	}
	if r.v.IsSet("seed") && r.v.GetInt64("seed") != 0 {
		cfg.Catalog.Seed = r.v.GetInt64("seed")
	}
	if r.v.GetBool("no-delay") {
		cfg.Business.AddToCartDelay = 0
		cfg.Business.QuantityDelay = 0
		cfg.Business.CheckoutDelay = 0
	}
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	r.a = a
	return nil
}

func (r *runner) close() error {
	if r.injected || r.a == nil {
		return nil
	}
	err := r.a.Close()
	r.a = nil
	util.SyncLogger()
	return err
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printProducts(w io.Writer, products []models.Product) {
	for _, p := range products {
		fmt.Fprintf(w, "%s | %s | %s | %s | %s | %.1f\n",
			p.ID, p.Slug, p.Name, pricing.Format(pricing.UnitPrice(p)), p.StockLevel(), p.Rating())
	}
}

func printCart(w io.Writer, view service.CartView) {
	if len(view.Items) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
	}
	for _, item := range view.Items {
		fmt.Fprintf(w, "%s | %s | x%d | %s\n",
			item.Product.ID, item.Product.Name, item.Quantity, pricing.Format(pricing.LineTotal(item)))
	}
	printSummary(w, view.Summary)
}

func printSummary(w io.Writer, s pricing.Summary) {
	shipping := pricing.Format(s.Shipping)
	if s.Shipping == 0 {
		shipping = "FREE"
	}
	fmt.Fprintf(w, "Items: %d\nSubtotal: %s\nTaxes: %s\nShipping: %s\nTotal: %s\n",
		s.ItemCount, pricing.Format(s.Subtotal), pricing.Format(s.Tax), shipping, pricing.Format(s.GrandTotal))
}

func (r *runner) productsCmd() *cobra.Command {
	var nav listing.NavigationParams
	var brands, categories []string
	var sortMode, output string
	var minPrice, maxPrice int64
	var page int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the listing flags replace the seeded selection, so keep the seed in it
			if brands != nil && nav.Brand != "" {
				brands = append([]string{nav.Brand}, brands...)
			}
			if categories != nil && nav.Category != "" {
				categories = append([]string{nav.Category}, categories...)
			}
			q := &listing.Query{
				Brands:     brands,
				Categories: categories,
				Sort:       listing.SortMode(sortMode),
				Page:       page,
			}
			if cmd.Flags().Changed("min-price") || cmd.Flags().Changed("max-price") {
				lo, hi := r.a.Catalog.PriceBounds()
				if cmd.Flags().Changed("min-price") {
					lo = minPrice
				}
				if cmd.Flags().Changed("max-price") {
					hi = maxPrice
				}
				q.Price = &listing.PriceRange{Min: lo, Max: hi}
			}

			res := r.a.CatalogService.Browse(cmd.Context(), nav, q)
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), res)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s, page %d of %d)\n", res.Title, res.CountLabel, res.Page, res.TotalPages)
			if res.NoResults {
				fmt.Fprintln(w, "No products found")
				return nil
			}
			printProducts(w, res.Products)
			return nil
		},
	}
	cmd.Flags().StringVar(&nav.Search, "search", "", "search text")
	cmd.Flags().StringVar(&nav.Brand, "brand", "", "brand id to open the listing with")
	cmd.Flags().StringVar(&nav.Category, "category", "", "category id to open the listing with")
	cmd.Flags().StringSliceVar(&brands, "brands", nil, "additional brand ids")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "additional category ids")
	cmd.Flags().Int64Var(&minPrice, "min-price", 0, "minimum discounted price")
	cmd.Flags().Int64Var(&maxPrice, "max-price", 0, "maximum discounted price")
	cmd.Flags().StringVar(&sortMode, "sort", string(listing.SortFeatured), "featured|price_asc|price_desc|newest|rating")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&output, "output", "", "output format")
	return cmd
}

func (r *runner) productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <slug>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := r.a.CatalogService.ProductDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		},
	}
}

func (r *runner) offersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offers",
		Short: "List discounted products",
		RunE: func(cmd *cobra.Command, args []string) error {
			o := r.a.CatalogService.Offers(cmd.Context())
			w := cmd.OutOrStdout()
			printProducts(w, o.Products)
			fmt.Fprintf(w, "Total savings: %s\n", pricing.Format(o.TotalSavings))
			return nil
		},
	}
}

func (r *runner) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			printCart(cmd.OutOrStdout(), r.a.CartService.View())
			return nil
		},
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := r.a.CartService.AddToCart(cmd.Context(), args[0], quantity)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), view)
			return nil
		},
	}
	add.Flags().IntVar(&quantity, "quantity", 1, "quantity")

	update := &cobra.Command{
		Use:   "update <product-id> <quantity>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			view, err := r.a.CartService.UpdateQuantity(cmd.Context(), args[0], q)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), view)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := r.a.CartService.RemoveFromCart(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), view)
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			printCart(cmd.OutOrStdout(), r.a.CartService.ClearCart(cmd.Context()))
			return nil
		},
	}

	cmd.AddCommand(add, update, remove, clear)
	return cmd
}

func (r *runner) checkoutCmd() *cobra.Command {
	var form service.CheckoutForm
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			oc, err := r.a.CheckoutService.Submit(cmd.Context(), form)
			if err != nil {
				var ve *service.ValidationError
				if errors.As(err, &ve) {
					for field, msg := range ve.Fields {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
					}
				}
				return err
			}

			confirmed, err := r.a.CheckoutService.Confirmation(oc.Token)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Order Placed Successfully!\nOrder Number: %s\nName: %s %s\nEmail: %s\n",
				confirmed.Reference, confirmed.Customer.FirstName, confirmed.Customer.LastName, confirmed.Customer.Email)
			fmt.Fprintf(w, "Shipping Address: %s, %s, %s, %s\nPayment Method: %s\n",
				confirmed.Customer.Address, confirmed.Customer.City, confirmed.Customer.State, confirmed.Customer.Pincode,
				strings.Replace(confirmed.Customer.PaymentMethod, "_", " ", 1))
			printSummary(w, confirmed.Summary)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.FirstName, "first-name", "", "first name")
	f.StringVar(&form.LastName, "last-name", "", "last name")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.Phone, "phone", "", "phone number")
	f.StringVar(&form.Address, "address", "", "street address")
	f.StringVar(&form.City, "city", "", "city")
	f.StringVar(&form.State, "state", "", "state")
	f.StringVar(&form.Pincode, "pincode", "", "pincode")
	f.StringVar(&form.PaymentMethod, "payment-method", "credit_card", strings.Join(service.PaymentMethods, "|"))
	f.StringVar(&form.Notes, "notes", "", "order notes")
	return cmd
}
