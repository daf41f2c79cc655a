package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/babymc/internal/storage"
)

var exportPath string

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list recorded builds",
		RunE:  listBuilds,
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [build_id]",
		Short: "export a build record as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportBuild,
	}
	cmd.Flags().StringVarP(&exportPath, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [build_id]",
		Short: "render a build record as markdown",
		Args:  cobra.ExactArgs(1),
		RunE:  summarizeBuild,
	}
}

func listBuilds(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	builds, err := st.List()
	if err != nil {
		return err
	}

	if len(builds) == 0 {
		fmt.Println("no builds found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tAGE\tCELLS\tSURFACES\tCHECK\tRAN\tDECK")

	for _, b := range builds {
		check := "-"
		if b.Check != nil {
			check = "ok"
			if b.Check.Overlaps+b.Check.Gaps+b.Check.Escapes > 0 {
				check = "failed"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%t\t%s\n",
			b.ID,
			orDash(b.Preset),
			humanize.Time(b.Timestamp),
			b.Cells,
			b.Surfaces,
			check,
			b.Ran,
			humanize.Bytes(dirSize(st.DeckDir(b.ID))),
		)
	}

	return w.Flush()
}

func exportBuild(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportPath == "" {
		return st.Export(os.Stdout, args[0])
	}
	if err := st.ExportFile(exportPath, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", exportPath)
	return nil
}

func summarizeBuild(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	cells, err := st.LoadCells(args[0])
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(summaryMarkdown(meta, cells))
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func summaryMarkdown(meta *storage.BuildMetadata, cells []storage.CellRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Build %s\n\n", meta.ID)
	fmt.Fprintf(&b, "- recorded %s (%s)\n", meta.Timestamp.Format("2006-01-02 15:04:05"), humanize.Time(meta.Timestamp))
	fmt.Fprintf(&b, "- preset `%s`, centre (%g, %g, %g)\n", orDash(meta.Preset), meta.Center[0], meta.Center[1], meta.Center[2])
	fmt.Fprintf(&b, "- %d cells, %d surfaces, %d materials, %d sources\n", meta.Cells, meta.Surfaces, meta.Materials, meta.Sources)
	fmt.Fprintf(&b, "- tallies: %s\n", strings.Join(meta.Tallies, ", "))
	fmt.Fprintf(&b, "- vault: %t, engine run: %t\n", meta.Vault, meta.Ran)
	if c := meta.Check; c != nil {
		fmt.Fprintf(&b, "- partition check: %s samples, %d overlaps, %d gaps, %d escapes\n",
			humanize.Comma(int64(c.Samples)), c.Overlaps, c.Gaps, c.Escapes)
	}

	b.WriteString("\n## Cells\n\n| ID | Name | Material | Catch-all |\n|---|---|---|---|\n")
	for _, c := range cells {
		mark := ""
		if c.CatchAll {
			mark = "yes"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", c.ID, c.Name, c.Material, mark)
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func dirSize(dir string) uint64 {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	var n uint64
	for _, e := range entries {
		if info, err := e.Info(); err == nil && !e.IsDir() {
			n += uint64(info.Size())
		}
	}
	return n
}
