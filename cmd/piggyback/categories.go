package main

import (
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/cli"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category taxonomy",
		Long: `Manage mappings from raw bank-feed category ids onto the two-level
parent/subcategory taxonomy. Spend with no mapping is reported under
Uncategorized rather than dropped.`,
	}

	cmd.AddCommand(categoriesMapCmd())
	cmd.AddCommand(categoriesListCmd())

	return cmd
}

func categoriesMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map <raw-id> <parent> <subcategory>",
		Short: "Map a raw feed category onto the taxonomy",
		Long: `Map a raw feed category id onto a parent/subcategory pair.

Examples:
  piggyback categories map "Food and Drink > Groceries" Food Groceries --icon 🛒
  piggyback categories map "raw-cat-42" Housing Rent`,
		Args: cobra.ExactArgs(3),
		RunE: runCategoriesMap,
	}

	cmd.Flags().String("icon", "", "display icon for the subcategory")
	cmd.Flags().Int("order", 0, "display order")

	return cmd
}

func runCategoriesMap(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	icon, _ := cmd.Flags().GetString("icon")
	order, _ := cmd.Flags().GetInt("order")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	mappings, err := store.GetCategoryMappings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load mappings: %w", err)
	}

	updated := model.CategoryMapping{
		RawCategoryID: args[0],
		ParentName:    args[1],
		ChildName:     args[2],
		Icon:          icon,
		DisplayOrder:  order,
	}

	replaced := false
	for i, m := range mappings {
		if m.RawCategoryID == updated.RawCategoryID {
			mappings[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		mappings = append(mappings, updated)
	}

	if err := store.SaveCategoryMappings(ctx, mappings); err != nil {
		return fmt.Errorf("failed to save mappings: %w", err)
	}

	verb := "Mapped"
	if replaced {
		verb = "Remapped"
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s %q to %s / %s", verb, updated.RawCategoryID, updated.ParentName, updated.ChildName)))
	return nil
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List category mappings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			mappings, err := store.GetCategoryMappings(ctx)
			if err != nil {
				return fmt.Errorf("failed to list mappings: %w", err)
			}

			if len(mappings) == 0 {
				fmt.Println(cli.FormatInfo("No category mappings"))
				return nil
			}

			fmt.Println(cli.FormatTitle("Category Mappings"))
			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-40s %-16s %-20s %-4s",
				"Raw Category", "Parent", "Subcategory", "Icon")))
			for _, m := range mappings {
				fmt.Printf("%-40s %-16s %-20s %-4s\n", m.RawCategoryID, m.ParentName, m.ChildName, m.Icon)
			}

			return nil
		},
	}
}
