package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"photo-gallery/pkg/models"
	"photo-gallery/pkg/services"
)

// newListTemplatesCmd creates a new command for listing the layout templates
func newListTemplatesCmd() *cobra.Command {
	var permission string

	cmd := &cobra.Command{
		Use:   "list-templates",
		Short: "List the photobook layout templates",
		Long:  `List the layout templates by category, marking those the given permission may not use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			perm := models.Permission(permission)
			if !perm.Valid() {
				return fmt.Errorf("unknown permission %q (free, premium or admin)", permission)
			}

			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			catalog := services.Catalog()
			available := make(map[string]bool)
			for _, tpl := range catalog.Available(perm) {
				available[tpl.ID] = true
			}

			fmt.Println("Layout Templates:")
			fmt.Println("================")

			for _, category := range catalog.Categories() {
				fmt.Printf("%s (%s)\n", category.Name, category.ID)
				for _, tpl := range category.Templates {
					mark := ""
					if !available[tpl.ID] {
						mark = " [locked]"
					} else if tpl.IsPremium {
						mark = " [premium]"
					}
					fmt.Printf("  - %s: %s, %d photos%s\n", tpl.ID, tpl.Name, tpl.Capacity(), mark)
				}
				fmt.Println()
			}

			fmt.Printf("Total: %d templates, %d available to %s\n", len(catalog.All()), len(available), perm)
			return nil
		},
	}

	cmd.Flags().StringVar(&permission, "permission", string(models.PermissionFree), "Permission to check templates against (free, premium, admin)")
	return cmd
}
