package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"oep4-squirrel/models"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Endpoints is the endpoint set of one network.
type Endpoints struct {
	// Nodes are Ontology node REST urls, e.g., http://dappnode1.ont.io:20334.
	Nodes []string `mapstructure:"nodes"`

	// Explorer is the explorer service base url.
	Explorer string `mapstructure:"explorer"`
}

type storage struct {
	// Driver is either "sqlite" or "mysql".
	Driver string

	// Path of the SQLite database file.
	Path string

	// MySQL configs.
	User     string
	Password string
	Hostname string
	Port     string
	Database string
}

type config struct {
	// Debug indicates if in debug mode.
	Debug bool

	// Label is used as prefix in log output, e.g., mainnet, testnet.
	Label string

	// Timeout bounds every single node or explorer call.
	Timeout time.Duration

	// PageSize is the number of transactions fetched for the transfer feed.
	PageSize int

	// Networks maps MAIN_NET / TEST_NET to their endpoint sets.
	Networks map[string]Endpoints

	// Aliases maps asset labels wrongly reported by the explorer to the real symbol.
	Aliases map[string]string

	Storage storage
}

var cfg config

// Load reads config.yaml from ./config (or ../config in tests), panics on invalid configs.
func Load(display bool) {
	viper.SetConfigName("config")
	viper.AddConfigPath("./config")
	// Incase test cases require loading configs
	viper.AddConfigPath("../config")

	if err := load(display); err != nil {
		panic(err)
	}

	attachNodeHTTPScheme()

	if err := validateConfig(); err != nil {
		panic(err)
	}
}

func setDefaults() {
	viper.SetDefault("timeout", 15*time.Second)
	viper.SetDefault("pagesize", 10)
	viper.SetDefault("networks", map[string]interface{}{
		string(models.MainNet): map[string]interface{}{
			"nodes":    []string{"http://dappnode1.ont.io:20334", "http://dappnode2.ont.io:20334"},
			"explorer": "https://explorer.ont.io",
		},
		string(models.TestNet): map[string]interface{}{
			"nodes":    []string{"http://polaris1.ont.io:20334", "http://polaris2.ont.io:20334"},
			"explorer": "https://polarisexplorer.ont.io",
		},
	})
	viper.SetDefault("aliases", map[string]string{
		// The explorer reports LUCKY transfers as LCY.
		"LCY": "LUCKY",
	})
	viper.SetDefault("storage.driver", "sqlite")
	viper.SetDefault("storage.path", "./oep4s.db")
}

/* ------------------------------
        `Get` functions
------------------------------ */

// DebugMode tells if running in debug mode.
func DebugMode() bool {
	return cfg.Debug
}

// GetLabel returns custome label as part of the log output prefix.
func GetLabel() string {
	return cfg.Label
}

// GetTimeout returns the per-call network timeout.
func GetTimeout() time.Duration {
	return cfg.Timeout
}

// GetPageSize returns the transfer feed page size.
func GetPageSize() int {
	return cfg.PageSize
}

// GetNodes returns node urls of every network.
func GetNodes() map[models.Network][]string {
	nodes := make(map[models.Network][]string)
	for net, endpoints := range cfg.Networks {
		nodes[models.Network(net)] = endpoints.Nodes
	}

	return nodes
}

// GetExplorers returns the explorer base url of every network.
func GetExplorers() map[models.Network]string {
	explorers := make(map[models.Network]string)
	for net, endpoints := range cfg.Networks {
		explorers[models.Network(net)] = endpoints.Explorer
	}

	return explorers
}

// GetAliases returns the reported label -> symbol mapping.
func GetAliases() map[string]string {
	return cfg.Aliases
}

// GetStorageDriver returns the database driver name.
func GetStorageDriver() string {
	return cfg.Storage.Driver
}

// GetStoragePath returns the SQLite database file.
func GetStoragePath() string {
	return cfg.Storage.Path
}

// GetDbConnStr returns MySQL connection string.
func GetDbConnStr() string {
	str := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s",
		cfg.Storage.User,
		cfg.Storage.Password,
		cfg.Storage.Hostname,
		cfg.Storage.Port,
		cfg.Storage.Database,
	)

	return str
}

/* ------------------------------
         Utility Functions
------------------------------ */

func load(display bool) error {
	setDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		return err
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return err
	}

	// viper lower-cases map keys.
	networks := make(map[string]Endpoints)
	for net, endpoints := range cfg.Networks {
		networks[strings.ToUpper(net)] = endpoints
	}
	cfg.Networks = networks

	aliases := make(map[string]string)
	for label, symbol := range cfg.Aliases {
		aliases[strings.ToUpper(label)] = symbol
	}
	cfg.Aliases = aliases

	if display {
		dbPass := cfg.Storage.Password
		if len(dbPass) != 0 {
			cfg.Storage.Password = "******"
		}

		configContent, err := json.MarshalIndent(cfg, "", "    ")
		if err != nil {
			panic(err)
		}

		log.Println(string(configContent))
		cfg.Storage.Password = dbPass
	}

	return nil
}

func attachNodeHTTPScheme() {
	for net, endpoints := range cfg.Networks {
		for i := 0; i < len(endpoints.Nodes); i++ {
			node := endpoints.Nodes[i]
			if !strings.HasPrefix(node, "http") {
				endpoints.Nodes[i] = "http://" + node
			}
		}

		cfg.Networks[net] = endpoints
	}
}

func validateConfig() error {
	for _, net := range []models.Network{models.MainNet, models.TestNet} {
		endpoints, ok := cfg.Networks[string(net)]
		if !ok {
			return fmt.Errorf("endpoints of %s must be set", net)
		}

		if err := checkNodes(endpoints.Nodes); err != nil {
			return err
		}

		if _, err := url.ParseRequestURI(endpoints.Explorer); err != nil {
			return fmt.Errorf("invalid explorer url of %s: %v", net, err)
		}
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}

	if cfg.PageSize <= 0 {
		return errors.New("pagesize must be greater than 0")
	}

	switch cfg.Storage.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}

	return nil
}

func checkNodes(nodes []string) error {
	if len(nodes) < 1 {
		return errors.New("at least 1 node url must be set")
	}

	for _, node := range nodes {
		u, err := url.Parse(node)
		if err != nil {
			return err
		}

		_, _, err = net.SplitHostPort(u.Host)
		if err != nil {
			return err
		}
	}

	return nil
}
