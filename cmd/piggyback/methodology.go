package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/cli"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/common"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/methodology"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/spf13/cobra"
)

func methodologyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "methodology",
		Short: "Inspect and customize budgeting methodologies",
	}

	cmd.AddCommand(methodologyListCmd())
	cmd.AddCommand(methodologyShowCmd())
	cmd.AddCommand(methodologyCustomizeCmd())
	cmd.AddCommand(methodologyResetCmd())

	return cmd
}

func methodologyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available methodologies",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Println(cli.FormatTitle("Methodologies"))
			for _, name := range methodology.Names() {
				sections, _ := methodology.Preset(name)
				kind := "assignment-based"
				if name.PercentageBased() {
					kind = "percentage-based"
				}
				fmt.Printf("%-20s %s, %d sections\n", name, kind, len(sections))
			}
			return nil
		},
	}
}

func methodologyShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a methodology's sections with customizations applied",
		Args:  cobra.ExactArgs(1),
		RunE:  runMethodologyShow,
	}

	cmd.Flags().String("user", "", "apply this user's customization instead of the partnership's")

	return cmd
}

func runMethodologyShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userFlag, _ := cmd.Flags().GetString("user")

	name := methodology.Name(args[0])
	if !name.Valid() {
		return fmt.Errorf("unknown methodology %q (known: %v)", args[0], methodology.Names())
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	customization, err := store.GetMethodologyCustomization(ctx, string(name), partnershipID(), userFlag)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to load customization: %w", err)
	}

	sections, err := methodology.Resolve(name, customization)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle(string(name)))
	if customization != nil {
		fmt.Println(cli.SubtleStyle.Render("(customized)"))
	}

	for _, section := range sections {
		target := ""
		if section.HasPercentage {
			target = fmt.Sprintf("%.0f%%", section.Percentage)
		}
		fmt.Printf("%-20s %6s  %s\n",
			section.Name,
			target,
			cli.SubtleStyle.Render(strings.Join(section.UnderlyingCategories, ", ")))
	}

	return nil
}

func methodologyCustomizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customize <name>",
		Short: "Override one section of a methodology",
		Long: `Override one section of a preset methodology for this partnership.

Examples:
  # Rename the Wants bucket and drop it to 25%
  piggyback methodology customize 50-30-20 --section Wants --rename "Fun Money" --percentage 25

  # Hide a section entirely
  piggyback methodology customize 50-30-20 --section Savings --hide

  # Make the change for one user only
  piggyback methodology customize 50-30-20 --section Wants --percentage 25 --user alice`,
		Args: cobra.ExactArgs(1),
		RunE: runMethodologyCustomize,
	}

	cmd.Flags().String("section", "", "preset section to override (required)")
	cmd.Flags().String("rename", "", "new display name for the section")
	cmd.Flags().Float64("percentage", -1, "new target percentage")
	cmd.Flags().Int("order", -1, "new display order")
	cmd.Flags().Bool("hide", false, "hide the section")
	cmd.Flags().StringSlice("categories", nil, "replace the section's underlying categories")
	cmd.Flags().String("user", "", "customize for this user only")
	_ = cmd.MarkFlagRequired("section")

	return cmd
}

func runMethodologyCustomize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sectionFlag, _ := cmd.Flags().GetString("section")
	renameFlag, _ := cmd.Flags().GetString("rename")
	percentageFlag, _ := cmd.Flags().GetFloat64("percentage")
	orderFlag, _ := cmd.Flags().GetInt("order")
	hideFlag, _ := cmd.Flags().GetBool("hide")
	categoriesFlag, _ := cmd.Flags().GetStringSlice("categories")
	userFlag, _ := cmd.Flags().GetString("user")

	name := methodology.Name(args[0])
	if !name.Valid() {
		return fmt.Errorf("unknown methodology %q (known: %v)", args[0], methodology.Names())
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	customization, err := store.GetMethodologyCustomization(ctx, string(name), partnershipID(), userFlag)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to load customization: %w", err)
	}
	if customization == nil {
		customization = &model.MethodologyCustomization{
			PartnershipID: partnershipID(),
			UserID:        userFlag,
		}
	}

	override := model.CustomCategory{
		OriginalName:         sectionFlag,
		Name:                 renameFlag,
		UnderlyingCategories: categoriesFlag,
		IsHidden:             hideFlag,
	}
	if percentageFlag >= 0 {
		pct := percentageFlag
		override.Percentage = &pct
	}
	if orderFlag >= 0 {
		order := orderFlag
		override.DisplayOrder = &order
	}

	// Replace any prior override for the same section.
	kept := customization.CustomCategories[:0]
	for _, existing := range customization.CustomCategories {
		if existing.OriginalName != sectionFlag {
			kept = append(kept, existing)
		}
	}
	customization.CustomCategories = append(kept, override)

	if err := methodology.Validate(name, customization); err != nil {
		return fmt.Errorf("customization rejected: %w", err)
	}

	if err := store.SaveMethodologyCustomization(ctx, string(name), customization); err != nil {
		return fmt.Errorf("failed to save customization: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Customized %s section %q", name, sectionFlag)))
	return nil
}

func methodologyResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <name>",
		Short: "Remove a methodology customization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userFlag, _ := cmd.Flags().GetString("user")

			name := methodology.Name(args[0])
			if !name.Valid() {
				return fmt.Errorf("unknown methodology %q (known: %v)", args[0], methodology.Names())
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteMethodologyCustomization(ctx, string(name), partnershipID(), userFlag); err != nil {
				return fmt.Errorf("failed to delete customization: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reset %s to its preset sections", name)))
			return nil
		},
	}

	cmd.Flags().String("user", "", "reset this user's customization instead of the partnership's")

	return cmd
}
