// catalogctl queries a product catalog CSV from the terminal. It loads the
// catalog the same way the server does and prints ranked results, which makes
// it handy for eyeballing search behavior against a data file before
// deploying it.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/infrastructure/csvstore"
	"github.com/shoplens/backend/internal/usecase"
)

var (
	catalogPath string
	limit       int
)

func main() {
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Query a product catalog CSV from the command line",
	}
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "data/products.csv", "path to the catalog CSV file")
	root.PersistentFlags().IntVar(&limit, "limit", 8, "maximum number of results")

	root.AddCommand(
		searchCmd(),
		featuredCmd(),
		onSaleCmd(),
		brandCmd(),
		categoryCmd(),
		priceRangeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query...]",
		Short: "Run the full search cascade for a free-text query",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			service := usecase.NewSearchService(catalog, nil, usecase.SearchConfig{})
			result := service.Search(context.Background(), strings.Join(args, " "), limit)

			fmt.Println(result.Description)
			printProducts(result.Products)
			return nil
		},
	}
}

func featuredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "List the curated featured mix",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			printProducts(catalog.Featured(limit))
			return nil
		},
	}
}

func onSaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "on-sale",
		Short: "List products currently discounted",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			printProducts(catalog.OnSale(limit))
			return nil
		},
	}
}

func brandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brand <name>",
		Short: "List products of the closest-matching brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			printProducts(catalog.ByBrand(args[0], limit))
			return nil
		},
	}
}

func categoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "category <name>",
		Short: "List products in the closest-matching category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			printProducts(catalog.ByCategory(args[0], limit))
			return nil
		},
	}
}

func priceRangeCmd() *cobra.Command {
	var minPrice, maxPrice float64
	cmd := &cobra.Command{
		Use:   "price-range",
		Short: "List products inside an inclusive price range",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			var minPtr, maxPtr *float64
			if cmd.Flags().Changed("min") {
				minPtr = &minPrice
			}
			if cmd.Flags().Changed("max") {
				maxPtr = &maxPrice
			}
			printProducts(catalog.ByPriceRange(minPtr, maxPtr, limit))
			return nil
		},
	}
	cmd.Flags().Float64Var(&minPrice, "min", 0, "minimum list price")
	cmd.Flags().Float64Var(&maxPrice, "max", 0, "maximum list price")
	return cmd
}

func loadCatalog() (*usecase.Catalog, error) {
	products, err := csvstore.New(catalogPath).Load(context.Background())
	if err != nil {
		return nil, err
	}
	return usecase.NewCatalog(products), nil
}

func printProducts(products []domain.Product) {
	if len(products) == 0 {
		fmt.Println("(no products)")
		return
	}
	for _, p := range products {
		price := "price unknown"
		if p.PriceKnown() {
			price = "$" + humanize.CommafWithDigits(p.EffectivePrice(), 2)
		}
		fmt.Printf("  %-40s %-30s %s\n", p.Name, p.Summary(), price)
	}
}
