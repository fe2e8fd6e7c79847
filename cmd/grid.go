package cmd

import (
	"fmt"
	"strconv"

	lipgloss "github.com/charmbracelet/lipgloss"
	cobra "github.com/spf13/cobra"

	grid "github.com/uioperator/uictl/internal/grid"
	logger "github.com/uioperator/uictl/internal/logger"
	mcpserver "github.com/uioperator/uictl/internal/mcpserver"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Inspect and convert grid coordinates",
}

var gridResolveCmd = &cobra.Command{
	Use:   "resolve <coordinate>",
	Short: "Convert a grid coordinate to its pixel center and bounds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResolver(func(r *grid.Resolver) error {
			center, err := r.Resolve(args[0])
			if err != nil {
				return err
			}
			bounds, err := r.ResolveToBounds(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Coordinate: %s\nCenter:     (%d, %d)\nBounds:     %s\n",
				args[0], center.X, center.Y, bounds)
			return nil
		})
	},
}

var gridLocateCmd = &cobra.Command{
	Use:   "locate <x> <y>",
	Short: "Find the grid cell containing a pixel coordinate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid x coordinate %q", args[0])
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid y coordinate %q", args[1])
		}

		return withResolver(func(r *grid.Resolver) error {
			label, err := r.PointToGrid(x, y)
			if err != nil {
				return err
			}
			fmt.Printf("Pixel (%d, %d) -> %s\n", x, y, label)
			return nil
		})
	},
}

var gridShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the current grid with cell labels and centers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withResolver(func(r *grid.Resolver) error {
			fmt.Println(r.Describe())
			fmt.Println()
			fmt.Println(renderGrid(r))
			return nil
		})
	},
}

var gridConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set grid dimensions and labeling scheme",
	Long: `Validate and store the grid geometry in the config file. Dimensions
must be between 1 and 26 in each axis; the scheme is one of
alphanumeric, numeric, or alpha.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, _ := cmd.Flags().GetInt("rows")
		columns, _ := cmd.Flags().GetInt("columns")
		schemeName, _ := cmd.Flags().GetString("scheme")

		scheme, err := grid.ParseScheme(schemeName)
		if err != nil {
			return err
		}
		// Validate against a nominal screen before persisting.
		if _, err := grid.NewConfig(rows, columns, scheme, grid.Rectangle{Width: 1920, Height: 1080}); err != nil {
			return err
		}

		cfg.Grid.Rows = rows
		cfg.Grid.Columns = columns
		cfg.Grid.Scheme = scheme.String()

		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Printf("Grid configured: %dx%d (%s)\n", rows, columns, scheme)
		return nil
	},
}

// withResolver connects to the display, runs fn with a grid resolver, and
// tears the connection down again.
func withResolver(fn func(*grid.Resolver) error) error {
	server, err := mcpserver.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := server.Close(); err != nil {
			logger.Warn("Failed to close display connection", "error", err)
		}
	}()
	return fn(server.Service().Resolver())
}

var (
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Align(lipgloss.Center).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true)
)

// renderGrid draws the grid as bordered cells, one box per cell, with the
// label and the pixel center of each.
func renderGrid(r *grid.Resolver) string {
	labels := r.AllLabels()
	centers := r.AllCenters()

	rows := make([]string, 0, len(labels))
	for i := range labels {
		cells := make([]string, 0, len(labels[i]))
		for j := range labels[i] {
			content := labelStyle.Render(labels[i][j]) + "\n" + centers[i][j].String()
			cells = append(cells, cellStyle.Render(content))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func init() {
	gridConfigureCmd.Flags().Int("rows", grid.DefaultRows, "number of rows (1-26)")
	gridConfigureCmd.Flags().Int("columns", grid.DefaultColumns, "number of columns (1-26)")
	gridConfigureCmd.Flags().String("scheme", "alphanumeric", "label scheme: alphanumeric, numeric, or alpha")

	gridCmd.AddCommand(gridResolveCmd)
	gridCmd.AddCommand(gridLocateCmd)
	gridCmd.AddCommand(gridShowCmd)
	gridCmd.AddCommand(gridConfigureCmd)
	rootCmd.AddCommand(gridCmd)
}
