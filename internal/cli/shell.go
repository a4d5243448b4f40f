package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront-service/internal/listing"
	"storefront-service/internal/pricing"

	"github.com/spf13/cobra"
)

const shellHelp = `commands:
  search <text>          set the search text
  brand <id>             toggle a brand filter
  category <id>          toggle a category filter
  price <min> <max>      set the price range
  sort <mode>            featured|price_asc|price_desc|newest|rating
  page <n>               show page n
  clear                  clear brand, category, price and sort
  show                   print the current page
  add <product-id> [n]   add to cart
  remove <product-id>    remove from cart
  cart                   print the cart
  exit                   leave the shell`

func (r *runner) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive listing shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := r.a.CatalogService.NewView(listing.NavigationParams{})
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			for {
				fmt.Fprint(out, "storefront> ")
				line, err := in.ReadString('\n')
				if err != nil && line == "" {
					if err == io.EOF {
						return nil
					}
					return err
				}
				fields := strings.Fields(line)
				if len(fields) == 0 {
					continue
				}
				if fields[0] == "exit" || fields[0] == "quit" {
					return nil
				}
				if err := r.shellLine(cmd, view, fields); err != nil {
					fmt.Fprintln(out, "error:", err)
				}
			}
		},
	}
}

func (r *runner) shellLine(cmd *cobra.Command, view *listing.View, fields []string) error {
	out := cmd.OutOrStdout()
	arg := strings.Join(fields[1:], " ")

	switch fields[0] {
	case "help":
		fmt.Fprintln(out, shellHelp)
		return nil
	case "search":
		view.SetSearch(arg)
	case "brand":
		view.ToggleBrand(arg)
	case "category":
		view.ToggleCategory(arg)
	case "price":
		if len(fields) != 3 {
			return fmt.Errorf("usage: price <min> <max>")
		}
		min, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid min price: %w", err)
		}
		max, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid max price: %w", err)
		}
		view.SetPriceRange(min, max)
	case "sort":
		mode := listing.SortMode(arg)
		if !mode.Valid() {
			return fmt.Errorf("unknown sort mode %q", arg)
		}
		view.SetSort(mode)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid page: %w", err)
		}
		view.SetPage(n)
	case "clear":
		view.ClearFilters()
	case "show":
	case "add":
		if len(fields) < 2 {
			return fmt.Errorf("usage: add <product-id> [quantity]")
		}
		qty := 1
		if len(fields) > 2 {
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return fmt.Errorf("invalid quantity: %w", err)
			}
			qty = n
		}
		v, err := r.a.CartService.AddToCart(cmd.Context(), fields[1], qty)
		if err != nil {
			return err
		}
		printCart(out, v)
		return nil
	case "remove":
		v, err := r.a.CartService.RemoveFromCart(cmd.Context(), arg)
		if err != nil {
			return err
		}
		printCart(out, v)
		return nil
	case "cart":
		printCart(out, r.a.CartService.View())
		return nil
	default:
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}

	printView(out, view)
	return nil
}

func printView(w io.Writer, view *listing.View) {
	res := view.Result()
	q := view.Query()
	fmt.Fprintf(w, "%s, page %d of %d, sort %s", listing.CountLabel(res.Total), res.Page, res.TotalPages, q.Sort)
	if q.Price != nil {
		fmt.Fprintf(w, ", %s - %s", pricing.Format(q.Price.Min), pricing.Format(q.Price.Max))
	}
	fmt.Fprintln(w)
	if res.NoResults {
		fmt.Fprintln(w, "No products found")
		return
	}
	printProducts(w, res.Products)
}
