package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/zhanglei1949/pachi/pattern"
)

func main() {
	input := flag.String("in", "", "Gamma table file to check")
	top := flag.Int("top", 0, "Print the N strongest and weakest entries (0 = none)")

	flag.Parse()

	if *input == "" {
		fmt.Println("Usage: gammacheck -in <patterns.gamma> [-top N]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	tab, err := pattern.LoadGammas(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gammacheck: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d entries\n", *input, tab.Len())

	if *top > 0 {
		entries := tab.Entries()
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Gamma > entries[j].Gamma
		})
		n := *top
		if n > len(entries) {
			n = len(entries)
		}
		fmt.Println("strongest:")
		for _, e := range entries[:n] {
			fmt.Printf("  %-24s %g\n", e.Feature, e.Gamma)
		}
		fmt.Println("weakest:")
		for _, e := range entries[len(entries)-n:] {
			fmt.Printf("  %-24s %g\n", e.Feature, e.Gamma)
		}
	}
}
