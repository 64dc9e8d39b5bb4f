package main

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"vecalign/internal/align"
	"vecalign/internal/cache"
	"vecalign/internal/config"
	"vecalign/internal/domain"
	"vecalign/internal/pipeline"
	"vecalign/internal/tui"
	"vecalign/internal/vecio"
)

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:           "vecalign",
		Short:         "Align word-embedding spaces with orthogonal Procrustes analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (optional)")
	rootCmd.AddCommand(newAlignCmd(), newExploreCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func newAlignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Align a source embedding space onto a target space",
		Long: "Learns the orthogonal transform mapping the source space onto the target space " +
			"from a bilingual dictionary and/or shared vocabulary, applies it, and writes the " +
			"aligned space.",
		RunE: runAlign,
	}
	cmd.Flags().StringP("source", "s", "", "The embeddings to be adjusted")
	cmd.Flags().StringP("target", "t", "", "The destination embedding space")
	cmd.Flags().StringP("output", "o", "", "Output vector filename")
	cmd.Flags().BoolP("unsup", "u", false, "Use unsupervised alignments over the shared vocabulary")
	cmd.Flags().StringP("biling-dict", "d", "", "Path to bilingual dict TSV file (source target)")
	cmd.Flags().BoolP("insert", "i", false, "Insert missing aligned words from the dict")
	cmd.Flags().Bool("no-cache", false, "Skip the on-disk space cache")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("target")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runAlign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	source, _ := cmd.Flags().GetString("source")
	target, _ := cmd.Flags().GetString("target")
	output, _ := cmd.Flags().GetString("output")
	unsup, _ := cmd.Flags().GetBool("unsup")
	dict, _ := cmd.Flags().GetString("biling-dict")
	insert, _ := cmd.Flags().GetBool("insert")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	aligner := pipeline.New(
		newLoader(cfg, noCache),
		vecio.Exporter{},
		align.NewInserter(cfg.Align.NoiseScale, nil, log.Logger),
		log.Logger,
	)
	result, err := aligner.Run(pipeline.Options{
		SourcePath:   source,
		TargetPath:   target,
		OutputPath:   output,
		DictPath:     dict,
		Unsupervised: unsup,
		Insert:       insert,
		Normalize:    cfg.NormalizeVectors(),
	})
	if err != nil {
		return err
	}
	log.Info().
		Int("pairs", result.Pairs).
		Int("rows", result.Rows).
		Int("inserted", result.Inserted).
		Int("words", result.Words).
		Int("dim", result.Dimension).
		Msg("alignment complete")
	return nil
}

func newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Interactively inspect nearest neighbors across two spaces",
		RunE:  runExplore,
	}
	cmd.Flags().StringP("source", "s", "", "An aligned source embedding space")
	cmd.Flags().StringP("target", "t", "", "The target embedding space")
	cmd.Flags().Int("top", 10, "Number of neighbors to show")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("target")
	return cmd
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sourcePath, _ := cmd.Flags().GetString("source")
	targetPath, _ := cmd.Flags().GetString("target")
	topK, _ := cmd.Flags().GetInt("top")

	loader := newLoader(cfg, false)
	source, err := loader.Load(sourcePath)
	if err != nil {
		return err
	}
	target, err := loader.Load(targetPath)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(tui.New(source, target, topK)).Run()
	return err
}

func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(path)
}

func newLoader(cfg *config.AppConfig, noCache bool) domain.Loader {
	if noCache || !cfg.Cache.Enabled {
		return vecio.Loader{}
	}
	return cache.NewLoader(cfg.Cache.Dir, log.Logger)
}
