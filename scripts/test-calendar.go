package main

import (
	"fmt"
	"os"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
	"github.com/fukayatti/api.fukayatti0.dev/internal/calendar"
)

func main() {
	// Sample records covering each marker symbol
	from := "応用物理Ⅱ(山口)"
	to := "物質工学実用数学(佐藤稔)"
	records := []bulletin.Record{
		{
			Date:        "1/6(火)",
			Kind:        bulletin.KindCancellation,
			Symbol:      bulletin.SymbolCancellation,
			TargetClass: "1-A",
			Period:      "3限",
			Subject:     "English",
			RawText:     "◉1-A 3限 English",
		},
		{
			Date:        "1/6(火)",
			Kind:        bulletin.KindSubstitution,
			Symbol:      bulletin.SymbolSubstitution,
			TargetClass: "4-C",
			Subject:     from + "⇒" + to,
			SubjectFrom: &from,
			SubjectTo:   &to,
			RawText:     "☆4-C 応用物理Ⅱ(山口)⇒物質工学実用数学(佐藤稔)",
		},
		{
			Date:        "1/7(水)",
			Kind:        bulletin.KindRoomChange,
			Symbol:      bulletin.SymbolRoomChange,
			TargetClass: "5-J",
			Period:      "2限",
			Subject:     "制御工学 5J教室へ",
			RawText:     "◇5-J 2限 制御工学 5J教室へ",
		},
	}

	icsContent := calendar.Generate(records, "https://www.ibaraki-ct.ac.jp/info/kyuko/")

	// Write to file (owner read/write only for security)
	filename := "test-kyuko.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
