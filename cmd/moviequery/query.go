package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jmagar/movieboard/internal/charts"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/services"
)

// queryFlags back the genre and year range filters of top and trend.
type queryFlags struct {
	genre    string
	yearFrom int
	yearTo   int
	limit    int
	chart    string
}

func (f *queryFlags) register(cmd *cobra.Command, withLimit bool) {
	cmd.Flags().StringVarP(&f.genre, "genre", "g", "", "primary genre (defaults to the first genre)")
	cmd.Flags().IntVar(&f.yearFrom, "from", 0, "first release year, inclusive")
	cmd.Flags().IntVar(&f.yearTo, "to", 0, "last release year, inclusive")
	cmd.Flags().StringVar(&f.chart, "chart", "", "also write a PNG chart to this path")
	if withLimit {
		cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "number of movies (one of the configured rank limits)")
	}
}

// input only sets the fields whose flags were given.
func (f *queryFlags) input(cmd *cobra.Command) services.QueryInput {
	in := services.QueryInput{Genre: f.genre}
	if cmd.Flags().Changed("from") {
		in.YearFrom = &f.yearFrom
	}
	if cmd.Flags().Changed("to") {
		in.YearTo = &f.yearTo
	}
	if cmd.Flags().Changed("limit") {
		in.Limit = &f.limit
	}
	return in
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func formatPopularity(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func writeChart(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func newTopCmd(opts *cliOptions) *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank the most popular movies of a genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.analytics()
			if err != nil {
				return err
			}
			report, err := svc.TopMovies(flags.input(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Title)
			if report.Empty {
				fmt.Fprintln(out, report.Message)
				return nil
			}

			table := newTable(out, "Rank", "Title", "Popularity")
			for _, item := range report.Items {
				table.Append([]string{strconv.Itoa(item.Rank), item.Title, formatPopularity(item.Popularity)})
			}
			table.Render()

			if flags.chart != "" {
				return writeChart(flags.chart, func(w io.Writer) error {
					return charts.RenderTopBar(*report, w)
				})
			}
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newTrendCmd(opts *cliOptions) *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show mean popularity per release year for a genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.analytics()
			if err != nil {
				return err
			}
			report, err := svc.Trend(flags.input(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Title)
			if report.Empty {
				fmt.Fprintln(out, report.Message)
				return nil
			}

			table := newTable(out, "Year", "Mean Popularity", "Movies")
			for _, p := range report.Points {
				table.Append([]string{strconv.Itoa(p.Year), formatPopularity(p.MeanPopularity), strconv.Itoa(p.Count)})
			}
			table.Render()

			if flags.chart != "" {
				return writeChart(flags.chart, func(w io.Writer) error {
					return charts.RenderTrendLine(*report, w)
				})
			}
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newCountsCmd(opts *cliOptions) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Count movies per genre released in one year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.analytics()
			if err != nil {
				return err
			}
			var yearPtr *int
			if cmd.Flags().Changed("year") {
				yearPtr = &year
			}
			report, err := svc.GenreCounts(yearPtr)
			if err != nil {
				return err
			}
			printGenreCounts(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().IntVarP(&year, "year", "y", 0, "release year (defaults to the latest year)")
	return cmd
}

func printGenreCounts(out io.Writer, report *models.GenreCountReport) {
	fmt.Fprintf(out, "Movies per genre released in %d\n", report.Year)
	table := newTable(out, "Genre", "Count")
	for _, row := range report.Rows {
		table.Append([]string{row.Genre, strconv.Itoa(row.Count)})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(report.Total)})
	table.Render()
}

func newGenresCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the primary genres in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.analytics()
			if err != nil {
				return err
			}
			genres, err := svc.Genres()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, g := range genres {
				fmt.Fprintln(out, g)
			}
			return nil
		},
	}
}
