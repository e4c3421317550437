package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/webessex/site/blogapi"
	"github.com/webessex/site/config"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Query the blog content API",
}

var blogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		res, err := blogClient(cmd).ListPosts(cmd.Context(), blogapi.ListOptions{
			Category: category,
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var blogShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a single post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := blogClient(cmd).GetPost(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(post)
	},
}

var blogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List blog categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := blogClient(cmd).ListCategories(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(categories)
	},
}

func blogClient(cmd *cobra.Command) *blogapi.Client {
	base, _ := cmd.Flags().GetString("api-base-url")
	if base == "" {
		base = config.EnvFromOS().ResolveAPIBaseURL(true)
	}
	return blogapi.NewClient(base)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(blogCmd)
	blogCmd.PersistentFlags().String("api-base-url", "", "Content API base URL (overrides "+config.EnvAPIBaseURL+")")

	blogListCmd.Flags().String("category", "", "Only list posts in this category slug")
	blogListCmd.Flags().Int("page", 0, "Listing page")
	blogListCmd.Flags().Int("page-size", 0, "Posts per page")

	blogCmd.AddCommand(blogListCmd, blogShowCmd, blogCategoriesCmd)
}
