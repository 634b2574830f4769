package main

import (
	"flag"
	"fmt"
	"os"
)

func games(args []string) error {
	fs := flag.NewFlagSet("games", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken games [options]

List registered games. In direct mode there is exactly one.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	count := a.eng.GameCount()
	if registryAddr := a.eng.GameRegistryAddress(); !registryAddr.IsZero() {
		fmt.Printf("Registry: %s\n", registryAddr)
	}
	fmt.Printf("=== Games (%d) ===\n", count)
	for id := uint64(1); id <= count; id++ {
		addr, err := a.eng.GameAddressFromID(id)
		if err != nil {
			return err
		}
		fmt.Printf("%4d  %s\n", id, addr)
	}
	return nil
}

func minters(args []string) error {
	fs := flag.NewFlagSet("minters", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken minters [options]

List every address that has ever minted, with its compact id.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	total := a.eng.TotalMinters()
	fmt.Printf("=== Minters (%d) ===\n", total)
	for id := uint64(1); id <= total; id++ {
		addr, err := a.eng.GetMinterAddress(id)
		if err != nil {
			return err
		}
		fmt.Printf("%4d  %s\n", id, addr)
	}
	return nil
}
