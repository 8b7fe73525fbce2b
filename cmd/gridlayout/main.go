package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/config"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/export"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/server"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/store"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/web"
)

var (
	cfgFile    string
	setName    string
	outputFile string
	format     string
	width      float64
	widgetID   string
	widgetW    int
	widgetH    int
	widgetDef  config.WidgetDef
	pushURL    string
	pushToken  string
	driver     string
	dsn        string
	dryRun     bool
	servePort  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gridlayout",
		Short:        "responsive grid layout engine and layout server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading .env: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "gridlayout.yaml", "path to YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "override storage driver (file, postgres)")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "override storage DSN")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "start the layout API and preview server",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP server port (default from config, 8080)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "compute pixel positions of a layout set at a container width",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&setName, "set", "", "layout set name (required)")
	renderCmd.Flags().Float64Var(&width, "width", 1200, "container width in pixels")
	renderCmd.Flags().StringVar(&outputFile, "output", "", "write the placements as JSON to this file")
	renderCmd.MarkFlagRequired("set")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write a layout set to a JSON, YAML or TOML file",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&setName, "set", "", "layout set name (required)")
	exportCmd.Flags().StringVar(&outputFile, "output", "", "output file (required)")
	exportCmd.Flags().StringVar(&format, "format", "", "json, yaml or toml (default from extension)")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "encode to memory only")
	exportCmd.MarkFlagRequired("set")
	exportCmd.MarkFlagRequired("output")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check breakpoints, columns and stored layouts",
		RunE:  runValidate,
	}

	addWidgetCmd := &cobra.Command{
		Use:   "add-widget",
		Short: "place a widget below the content of every stored breakpoint",
		RunE:  runAddWidget,
	}
	addWidgetCmd.Flags().StringVar(&setName, "set", "", "layout set name (required)")
	addWidgetCmd.Flags().StringVar(&widgetID, "id", "", "item id (default: next free widget-N)")
	addWidgetCmd.Flags().IntVar(&widgetW, "w", 0, "width in columns")
	addWidgetCmd.Flags().IntVar(&widgetH, "h", 0, "height in rows")
	addWidgetCmd.Flags().StringVar(&widgetDef.Title, "title", "", "define the widget with this title")
	addWidgetCmd.Flags().StringVar(&widgetDef.Content, "content", "", "define the widget with this HTML content")
	addWidgetCmd.MarkFlagRequired("set")

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "upload a layout set to a running gridlayout server",
		RunE:  runPush,
	}
	pushCmd.Flags().StringVar(&setName, "set", "", "layout set name (required)")
	pushCmd.Flags().StringVar(&pushURL, "url", "", "server URL (required)")
	pushCmd.Flags().StringVar(&pushToken, "token", "", "API token (or set GRIDLAYOUT_TOKEN env)")
	pushCmd.MarkFlagRequired("set")
	pushCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(serveCmd, renderCmd, exportCmd, validateCmd, addWidgetCmd, pushCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cliArgs := make(map[string]string)
	if driver != "" {
		cliArgs[config.OverrideDriver] = driver
	}
	if dsn != "" {
		cliArgs[config.OverrideDSN] = dsn
	}
	if servePort != 0 {
		cliArgs[config.OverridePort] = strconv.Itoa(servePort)
	}
	return config.Load(cfgFile, cliArgs)
}

func openStore(ctx context.Context) (*config.Config, store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(ctx, cfg, cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, st, err := openStore(ctx)
	if err != nil {
		return err
	}
	srv, err := server.New(web.EmbeddedFS, cfg, st)
	if err != nil {
		return err
	}
	httpSrv := srv.HTTPServer(fmt.Sprintf(":%d", cfg.GetServer().Port))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("gridlayout server: http://localhost%s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Println("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	ls, err := st.Load(cmd.Context(), setName)
	if err != nil {
		return err
	}

	v := server.Render(cfg, ls, width)
	fmt.Printf("%s at %gpx: breakpoint %s, %d columns, height %gpx\n", setName, v.Width, v.Breakpoint, v.Cols, v.Height)
	for _, p := range v.Placements {
		fmt.Printf("  %-16s %-20s left=%g top=%g width=%g height=%g\n",
			p.ID, p.Item, p.Position.Left, p.Position.Top, p.Position.Width, p.Position.Height)
	}

	if outputFile != "" {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling placements: %w", err)
		}
		if err := os.WriteFile(outputFile, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outputFile, err)
		}
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	_, st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	ls, err := st.Load(cmd.Context(), setName)
	if err != nil {
		return err
	}
	f := format
	if f == "" {
		f = export.FormatFor(outputFile)
	}
	if !dryRun {
		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return err
		}
	}
	_, err = export.WriteLayouts(ls, outputFile, f, dryRun)
	return err
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	errs := cfg.Validate()
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "  %v\n", e)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d problems in %s", len(errs), cfgFile)
	}
	fmt.Printf("%s: %d breakpoints, %d widgets, %d layout sets ok\n",
		cfgFile, len(cfg.Breakpoints), len(cfg.Widgets), len(cfg.Layouts))
	return nil
}

func runAddWidget(cmd *cobra.Command, args []string) error {
	cfg, st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	ls, err := st.Load(cmd.Context(), setName)
	if errors.Is(err, store.ErrNotFound) {
		ls = grid.Layouts{}
	} else if err != nil {
		return err
	}

	next, id, err := server.AddWidget(cfg, ls, widgetID, widgetW, widgetH)
	if err != nil {
		return err
	}
	if err := st.Save(cmd.Context(), setName, next); err != nil {
		return err
	}
	if widgetDef.Title != "" || widgetDef.Content != "" {
		def := widgetDef
		def.W, def.H = widgetW, widgetH
		if err := config.NewEditor(cfgFile).SetWidget(id, def); err != nil {
			return fmt.Errorf("defining widget %s: %w", id, err)
		}
		fmt.Printf("  defined widget %s\n", id)
	}
	for _, bp := range grid.SortBreakpoints(cfg.Breakpoints) {
		if i, ok := next[bp].Find(id); ok {
			fmt.Printf("  %s [%s]: %s\n", setName, bp, next[bp][i])
		}
	}
	return nil
}

func runPush(cmd *cobra.Command, args []string) error {
	_, st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	ls, err := st.Load(cmd.Context(), setName)
	if err != nil {
		return err
	}
	token := pushToken
	if token == "" {
		token = os.Getenv("GRIDLAYOUT_TOKEN")
	}
	return export.Push(setName, ls, pushURL, token)
}
