package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/ghget/internal/app"
	"github.com/quantmind-br/ghget/internal/config"
	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/git"
	"github.com/quantmind-br/ghget/internal/manifest"
	"github.com/quantmind-br/ghget/internal/utils"
	"github.com/quantmind-br/ghget/pkg/version"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	log     *utils.Logger

	// Dependencies for testing
	osStat      = os.Stat
	dialTimeout = net.DialTimeout
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ghget:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ghget --get <url> | --manifest <file>",
	Short: "Fetch a single file or directory from a GitHub repository",
	Long: `ghget downloads one file or directory out of a GitHub repository into the
current directory, given the URL you would open in a browser:

  ghget -g https://github.com/owner/repo/tree/<branch>/<path>
  ghget -g https://github.com/owner/repo/blob/<branch>/<file>

The repository is cloned over SSH into a scratch directory, the branch is
told apart from the path by asking the remote which branches exist, and the
requested entry is moved into place. The scratch clone is removed afterwards.

Several URLs can be fetched in one run from a YAML or JSON manifest:

  ghget -m sources.yaml`,
	Version:       version.Short(),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.ghget/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Identity flags
	rootCmd.PersistentFlags().StringP("identity", "i", config.DefaultKeyPath, "SSH private key used for every remote operation")
	rootCmd.PersistentFlags().String("passphrase-env", "", "Environment variable holding the key passphrase")
	rootCmd.PersistentFlags().Bool("insecure-ignore-host-key", false, "Skip known_hosts verification")

	// Scratch and network flags
	rootCmd.PersistentFlags().String("scratch-dir", "", "Scratch clone directory (default is <tmp>/ghget)")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultNetworkTimeout, "Timeout for listing and cloning")

	// Fetch flags
	rootCmd.Flags().StringP("get", "g", "", "GitHub tree or blob URL to fetch")
	rootCmd.Flags().StringP("manifest", "m", "", "YAML or JSON file listing URLs to fetch in order (- reads stdin)")
	rootCmd.Flags().StringP("output", "o", config.DefaultOutputDir, "Directory the entry is moved into")
	rootCmd.Flags().Bool("force", false, "Replace an existing entry at the destination")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "No progress output")
	rootCmd.MarkFlagsOneRequired("get", "manifest")
	rootCmd.MarkFlagsMutuallyExclusive("get", "manifest")

	bindFlags()

	// Add subcommands
	versionCmd.Flags().Bool("json", false, "Print version information as JSON")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
}

// bindFlags binds flags to viper keys
func bindFlags() {
	_ = viper.BindPFlag("identity.key_path", rootCmd.PersistentFlags().Lookup("identity"))
	_ = viper.BindPFlag("identity.passphrase_env", rootCmd.PersistentFlags().Lookup("passphrase-env"))
	_ = viper.BindPFlag("identity.insecure_ignore_host_key", rootCmd.PersistentFlags().Lookup("insecure-ignore-host-key"))
	_ = viper.BindPFlag("scratch.directory", rootCmd.PersistentFlags().Lookup("scratch-dir"))
	_ = viper.BindPFlag("network.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("output.directory", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.overwrite", rootCmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("output.quiet", rootCmd.Flags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	rawURL, _ := cmd.Flags().GetString("get")
	manifestPath, _ := cmd.Flags().GetString("manifest")

	var manifestCfg *manifest.Config
	if manifestPath != "" {
		manifestCfg, err = manifest.NewLoader().Load(utils.ExpandPath(manifestPath))
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Interrupted, cleaning up...")
			cancel()
		case <-ctx.Done():
		}
	}()

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		CommonOptions: domain.CommonOptions{
			Verbose: verbose,
			Quiet:   cfg.Output.Quiet,
			Force:   cfg.Output.Overwrite,
		},
		Config: cfg,
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	if manifestCfg != nil {
		results, err := orchestrator.RunManifest(ctx, manifestCfg)
		if !cfg.Output.Quiet {
			for _, r := range results {
				if r.Error == nil {
					fmt.Fprintln(cmd.OutOrStdout(), r.Result.Path)
				}
			}
		}
		return err
	}

	result, err := orchestrator.Run(ctx, rawURL)
	if err != nil {
		return err
	}

	if !cfg.Output.Quiet {
		fmt.Fprintln(cmd.OutOrStdout(), result.Path)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		if !asJSON {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return nil
		}

		data, err := version.Get().JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration ghget would run with, after merging defaults,
the config file, GHGET_* environment variables and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		data, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", used)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check SSH identity and connectivity",
	Long:  "Verifies that the SSH key, known_hosts, scratch directory and GitHub SSH endpoint are usable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking ghget setup...")
		allPassed := true

		cfg, err := config.Load()
		fmt.Fprint(out, "  Config file: ")
		if err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			return nil
		}
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(out, "OK (%s)\n", used)
		} else {
			fmt.Fprintln(out, "OK (defaults)")
		}

		// Check 1: SSH key
		id := cfg.ResolveIdentity()
		fmt.Fprint(out, "  SSH key: ")
		if err := checkIdentity(id); err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			allPassed = false
		} else {
			fmt.Fprintf(out, "OK (%s)\n", id.KeyPath)
		}

		// Check 2: known_hosts
		fmt.Fprint(out, "  known_hosts: ")
		if id.InsecureIgnoreHostKey {
			fmt.Fprintln(out, "SKIPPED (host key verification disabled)")
		} else if path := knownHostsPath(); checkFile(path) {
			fmt.Fprintf(out, "OK (%s)\n", path)
		} else {
			fmt.Fprintf(out, "WARN (%s not found, host key verification will fail)\n", path)
		}

		// Check 3: scratch parent is writable
		fmt.Fprint(out, "  Scratch directory: ")
		scratchDir := utils.ExpandPath(cfg.Scratch.Directory)
		if checkWritable(filepath.Dir(scratchDir)) {
			fmt.Fprintf(out, "OK (%s)\n", scratchDir)
		} else {
			fmt.Fprintf(out, "FAILED (%s is not writable)\n", filepath.Dir(scratchDir))
			allPassed = false
		}

		// Check 4: SSH endpoint reachable
		fmt.Fprint(out, "  GitHub SSH: ")
		if checkSSHEndpoint(domain.ForgeHost + ":22") {
			fmt.Fprintln(out, "OK")
		} else {
			fmt.Fprintln(out, "FAILED (cannot reach github.com:22)")
			allPassed = false
		}

		fmt.Fprintln(out)
		if allPassed {
			fmt.Fprintln(out, "All critical checks passed!")
		} else {
			fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkIdentity loads the key the same way a run does
func checkIdentity(id domain.Identity) error {
	_, err := git.AuthFromIdentity(id)
	return err
}

// knownHostsPath returns the file consulted for host keys
func knownHostsPath() string {
	if path := os.Getenv("SSH_KNOWN_HOSTS"); path != "" {
		return path
	}
	return utils.ExpandPath("~/.ssh/known_hosts")
}

func checkFile(path string) bool {
	info, err := osStat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// checkWritable checks if we can create a file in dir
func checkWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".ghget_test_write")
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(f.Name())
	return true
}

// checkSSHEndpoint checks that a TCP connection to addr can be opened
func checkSSHEndpoint(addr string) bool {
	conn, err := dialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
