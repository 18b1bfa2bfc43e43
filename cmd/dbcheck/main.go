package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/common/config"
	"github.com/harnesslab/wiremes/pkg/version"
	"github.com/spf13/cobra"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "dbcheck",
		Short: "Verify the MES database connection",
		Long:  `dbcheck opens the configured business database, reports what went wrong when it cannot, and exits non-zero on failure`,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(run())
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dbcheck",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dbcheck version %s\n", version.Get())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "configs/apiserver.yaml", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

// hints maps fragments of driver error text to operator guidance.
var hints = []struct {
	fragment string
	advice   string
}{
	{"connection refused", "the database process is not listening on the configured host/port; check that it is running and that the port matches"},
	{"no such host", "the configured host name does not resolve; check the host entry and DNS"},
	{"Access denied", "the user or password is wrong (mysql); check the credentials"},
	{"password authentication failed", "the user or password is wrong (postgres); check the credentials"},
	{"Unknown database", "the schema does not exist (mysql); create it or fix dbname"},
	{"does not exist", "the database does not exist (postgres); create it or fix dbname"},
	{"unable to open database file", "the sqlite file path is not writable; check the directory and permissions"},
	{"i/o timeout", "the host is unreachable; check network routes and firewalls"},
}

func run() int {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbcheck: cannot load configuration: %v\n", err)
		return 1
	}

	fmt.Printf("config:   %s\n", cfgPath)
	fmt.Printf("type:     %s\n", cfg.Database.Type)
	switch cfg.Database.Type {
	case "sqlite":
		fmt.Printf("file:     %s\n", cfg.Database.DBName)
	default:
		fmt.Printf("host:     %s:%d\n", cfg.Database.Host, cfg.Database.Port)
		fmt.Printf("database: %s\n", cfg.Database.DBName)
		fmt.Printf("user:     %s\n", cfg.Database.User)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\ndbcheck: FAILED: %v\n", err)
		for _, h := range hints {
			if strings.Contains(err.Error(), h.fragment) {
				fmt.Fprintf(os.Stderr, "hint: %s\n", h.advice)
				break
			}
		}
		return 1
	}
	defer db.Close()

	fmt.Println("\ndbcheck: OK")
	return 0
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
