package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type Program struct {
	DesIT    string `json:"des_it"`
	Variants []struct {
		Cod string `json:"cod"`
	} `json:"cdsSub"`
}

type Department struct {
	DesIT    string    `json:"des_it"`
	Programs []Program `json:"cds"`
}

type Group struct {
	DesIT     string       `json:"des_it"`
	Subgroups []Department `json:"subgroups"`
}

func main() {
	// unitn degree tree for 2025/2026
	url := "https://unitn.coursecatalogue.cineca.it/api/v1/corsi?anno=2025&minimal=true"

	fmt.Println("Fetching the unitn degree tree from Cineca...")

	resp, err := http.Get(url)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var groups []Group
	err = json.Unmarshal(body, &groups)
	if err != nil {
		fmt.Println("Error decoding JSON:", err)
		return
	}

	fmt.Println("\n--- 🎓 Degree programs: unitn 2025/2026 ---")
	for _, g := range groups {
		fmt.Printf("\n%s\n", g.DesIT)
		for _, d := range g.Subgroups {
			fmt.Printf("  %s (%d programs)\n", d.DesIT, len(d.Programs))
			for _, p := range d.Programs {
				cod := "?"
				if len(p.Variants) > 0 {
					cod = p.Variants[0].Cod
				}
				fmt.Printf("    [%s] %s\n", cod, p.DesIT)
			}
		}
	}
}
