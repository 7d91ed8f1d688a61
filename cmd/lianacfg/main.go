// Command lianacfg loads a configuration location and either dumps the
// resolved tree or prints a single resolved key, exercising the
// library end to end the way the teacher's formatter CLI exercised its
// formatters.
package main

import (
	stdjson "encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	cfg "github.com/leonardo1317/liana-config"
	loaderjson "github.com/leonardo1317/liana-config/loaders/json"
	loaderproperties "github.com/leonardo1317/liana-config/loaders/properties"
	loaderxml "github.com/leonardo1317/liana-config/loaders/xml"
	loaderyaml "github.com/leonardo1317/liana-config/loaders/yaml"
	"github.com/leonardo1317/liana-config/log"
	providerclasspath "github.com/leonardo1317/liana-config/providers/classpath"
	providerfile "github.com/leonardo1317/liana-config/providers/file"
)

func main() {
	baseDirFlag := flag.String("base-dir", "", "Base directory to search for resources (repeatable via comma separation)")
	namesFlag := flag.String("names", "", "Comma-separated resource names, e.g. \"application,file:overrides.yaml\"")
	profileFlag := flag.String("profile", "", "Active profile (falls back to LIANA_PROFILE, then \"default\")")
	keyFlag := flag.String("key", "", "Dotted path to print, e.g. \"server.port\" (prints the whole tree if empty)")
	verboseFlag := flag.Bool("v", false, "Verbose (debug-level) logging")

	flag.Parse()

	logger := log.New(log.LevelWarn)
	if *verboseFlag {
		logger = log.New(log.LevelDebug)
	}

	builder := cfg.NewResourceLocationBuilder().WithVerbose(*verboseFlag)
	var baseDirs []string
	if *baseDirFlag != "" {
		baseDirs = strings.Split(*baseDirFlag, ",")
		builder = builder.WithBaseDirs(baseDirs...)
	}
	if *namesFlag != "" {
		builder = builder.WithResourceNames(strings.Split(*namesFlag, ",")...)
	}

	location, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid resource location: %v\n", err)
		os.Exit(1)
	}

	registries := cfg.Registries{
		Providers: cfg.NewStrategyRegistry([]cfg.ResourceProvider{
			providerclasspath.New(baseDirs...),
			providerfile.New(""),
		}, nil),
		Loaders: cfg.NewStrategyRegistry([]cfg.ResourceLoader{
			loaderproperties.New(),
			loaderyaml.New(),
			loaderjson.New(),
			loaderxml.New(),
		}, nil),
	}

	manager := cfg.NewConfigurationManager(registries, *profileFlag, logger)

	configuration, err := manager.Load(location)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if *keyFlag == "" {
		printJSON(configuration.GetRootAsMap())
		return
	}

	value, found := configuration.GetRaw(*keyFlag)
	if !found {
		fmt.Fprintf(os.Stderr, "Key %q not found\n", *keyFlag)
		os.Exit(1)
	}
	printJSON(value)
}

func printJSON(v any) {
	out, err := stdjson.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
