package bulletin

import (
	"testing"
)

func plain(texts ...string) []Paragraph {
	paragraphs := make([]Paragraph, 0, len(texts))
	for _, text := range texts {
		paragraphs = append(paragraphs, Paragraph{Text: text})
	}
	return paragraphs
}

func strPtr(s string) *string { return &s }

func TestParseEntryDecomposition(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantSymbol  string
		wantKind    string
		wantClass   string
		wantPeriod  string
		wantSubject string
		wantFrom    *string
		wantTo      *string
		wantRaw     string
	}{
		{
			name:        "cancellation with period and subject",
			text:        "◉1-A 3限 English",
			wantSymbol:  SymbolCancellation,
			wantKind:    KindCancellation,
			wantClass:   "1-A",
			wantPeriod:  "3限",
			wantSubject: "English",
			wantRaw:     "◉1-A 3限 English",
		},
		{
			name:        "substitution with arrow and no period",
			text:        "☆2-B 応用物理Ⅱ(山口)⇒物質工学実用数学(佐藤稔)",
			wantSymbol:  SymbolSubstitution,
			wantKind:    KindSubstitution,
			wantClass:   "2-B",
			wantPeriod:  "",
			wantSubject: "応用物理Ⅱ(山口)⇒物質工学実用数学(佐藤稔)",
			wantFrom:    strPtr("応用物理Ⅱ(山口)"),
			wantTo:      strPtr("物質工学実用数学(佐藤稔)"),
			wantRaw:     "☆2-B 応用物理Ⅱ(山口)⇒物質工学実用数学(佐藤稔)",
		},
		{
			name:        "makeup with double period",
			text:        "◎3-C 7・8限 プログラミング演習",
			wantSymbol:  SymbolMakeup,
			wantKind:    KindMakeup,
			wantClass:   "3-C",
			wantPeriod:  "7・8限",
			wantSubject: "プログラミング演習",
		},
		{
			name:        "room change with multi token subject",
			text:        "◇4-E 2限 制御工学 5E教室へ",
			wantSymbol:  SymbolRoomChange,
			wantKind:    KindRoomChange,
			wantClass:   "4-E",
			wantPeriod:  "2限",
			wantSubject: "制御工学 5E教室へ",
		},
		{
			name:        "free slot period keyword",
			text:        "◉5-M 空きコマ",
			wantSymbol:  SymbolCancellation,
			wantKind:    KindCancellation,
			wantClass:   "5-M",
			wantPeriod:  "空きコマ",
			wantSubject: "",
		},
		{
			name:        "fullwidth content folded before field extraction",
			text:        "◉１－Ａ　３限　英語",
			wantSymbol:  SymbolCancellation,
			wantKind:    KindCancellation,
			wantClass:   "1-A",
			wantPeriod:  "3限",
			wantSubject: "英語",
			wantRaw:     "◉1-A 3限 英語",
		},
		{
			name:        "ascii arrow substitution",
			text:        "☆1-B 数学->英語",
			wantSymbol:  SymbolSubstitution,
			wantKind:    KindSubstitution,
			wantClass:   "1-B",
			wantPeriod:  "",
			wantSubject: "数学->英語",
			wantFrom:    strPtr("数学"),
			wantTo:      strPtr("英語"),
		},
		{
			name:        "arrow with surrounding spaces",
			text:        "☆2-A 国語 ⇒ 書道",
			wantSymbol:  SymbolSubstitution,
			wantKind:    KindSubstitution,
			wantClass:   "2-A",
			wantPeriod:  "",
			wantSubject: "国語 ⇒ 書道",
			wantFrom:    strPtr("国語"),
			wantTo:      strPtr("書道"),
		},
		{
			name:        "non period second token joins subject",
			text:        "◉1-A 自習 図書室",
			wantSymbol:  SymbolCancellation,
			wantKind:    KindCancellation,
			wantClass:   "1-A",
			wantPeriod:  "",
			wantSubject: "自習 図書室",
		},
		{
			name:       "bare symbol yields empty fields",
			text:       "◉",
			wantSymbol: SymbolCancellation,
			wantKind:   KindCancellation,
			wantRaw:    "◉",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Parse(plain(tt.text))
			if len(records) != 1 {
				t.Fatalf("expected 1 record, got %d", len(records))
			}
			rec := records[0]

			if rec.Date != UnknownDate {
				t.Errorf("expected date %q without a heading, got %q", UnknownDate, rec.Date)
			}
			if rec.Symbol != tt.wantSymbol {
				t.Errorf("symbol = %q, want %q", rec.Symbol, tt.wantSymbol)
			}
			if rec.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", rec.Kind, tt.wantKind)
			}
			if rec.TargetClass != tt.wantClass {
				t.Errorf("target class = %q, want %q", rec.TargetClass, tt.wantClass)
			}
			if rec.Period != tt.wantPeriod {
				t.Errorf("period = %q, want %q", rec.Period, tt.wantPeriod)
			}
			if rec.Subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", rec.Subject, tt.wantSubject)
			}
			if tt.wantRaw != "" && rec.RawText != tt.wantRaw {
				t.Errorf("raw text = %q, want %q", rec.RawText, tt.wantRaw)
			}

			checkPtr := func(field string, got, want *string) {
				switch {
				case want == nil && got != nil:
					t.Errorf("%s = %q, want absent", field, *got)
				case want != nil && got == nil:
					t.Errorf("%s absent, want %q", field, *want)
				case want != nil && got != nil && *got != *want:
					t.Errorf("%s = %q, want %q", field, *got, *want)
				}
			}
			checkPtr("subject_from", rec.SubjectFrom, tt.wantFrom)
			checkPtr("subject_to", rec.SubjectTo, tt.wantTo)
		})
	}
}

func TestParseDateContext(t *testing.T) {
	records := Parse(plain(
		"◉5-J 1限 電気回路",
		"1/6(火)",
		"◉1-A 3限 English",
		"☆1-B 数学⇒英語",
		"1/7(水) 追加",
		"◎2-C 4限 化学",
	))

	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	wantDates := []string{UnknownDate, "1/6(火)", "1/6(火)", "1/7(水)"}
	for i, want := range wantDates {
		if records[i].Date != want {
			t.Errorf("record %d date = %q, want %q", i, records[i].Date, want)
		}
	}
}

func TestParseHeadingWithEmphasis(t *testing.T) {
	records := Parse([]Paragraph{
		{Text: "1/6(火)", Emphasis: true},
		{Text: "◉1-A 3限 English"},
	})

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Date != "1/6(火)" {
		t.Errorf("date = %q, want %q", records[0].Date, "1/6(火)")
	}
}

func TestParseEmphasisOnlyHeading(t *testing.T) {
	records := Parse([]Paragraph{
		{Text: "冬季休業明け 1月6日 火曜日", Emphasis: true},
		{Text: "◉1-A 3限 English"},
	})

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	// Emphasis headings without the M/D shape carry their full text,
	// whitespace removed.
	if want := "冬季休業明け1月6日火曜日"; records[0].Date != want {
		t.Errorf("date = %q, want %q", records[0].Date, want)
	}
}

func TestParseFullwidthHeading(t *testing.T) {
	records := Parse(plain(
		"１／６（火）",
		"◉1-A 3限 English",
	))

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Date != "1/6(火)" {
		t.Errorf("date = %q, want %q", records[0].Date, "1/6(火)")
	}
}

func TestParseHeadingDiscardsTrailingText(t *testing.T) {
	records := Parse(plain(
		"1/9(金) 午後の授業",
		"◉2-D 5限 物理",
	))

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Date != "1/9(金)" {
		t.Errorf("date = %q, want %q", records[0].Date, "1/9(金)")
	}
}

func TestParseScheduleLinkIsNotHeading(t *testing.T) {
	records := Parse(plain(
		"1/13(火)",
		"1/14(水)の時間割はこちら",
		"1/15(木)の授業についてのお知らせ",
		"◉1-A 3限 English",
	))

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	// The link and notice paragraphs open like dates but must not
	// displace the heading before them.
	if records[0].Date != "1/13(火)" {
		t.Errorf("date = %q, want %q", records[0].Date, "1/13(火)")
	}
}

func TestParseIgnoresProse(t *testing.T) {
	records := Parse(plain(
		"保護者の皆様へ",
		"1/6(火)",
		"下記の通り授業を変更します。",
		"◉1-A 3限 English",
		"●1-B 4限 数学",
		"以上",
	))

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Subject != "English" {
		t.Errorf("subject = %q, want %q", records[0].Subject, "English")
	}
	if records[0].Date != "1/6(火)" {
		t.Errorf("date = %q, want %q", records[0].Date, "1/6(火)")
	}
}

func TestParseNoHeadingsAtAll(t *testing.T) {
	records := Parse(plain(
		"◉1-A 3限 English",
		"◎2-B 4限 数学",
		"☆3-C 国語⇒社会",
	))

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Date != UnknownDate {
			t.Errorf("record %d date = %q, want %q", i, rec.Date, UnknownDate)
		}
	}
}

func TestParsePreservesSourceOrder(t *testing.T) {
	records := Parse(plain(
		"1/6(火)",
		"◉1-A 1限 英語",
		"◎1-B 2限 数学",
		"お知らせ",
		"☆1-C 3限 国語",
		"◇1-D 4限 理科",
	))

	wantSubjects := []string{"英語", "数学", "国語", "理科"}
	if len(records) != len(wantSubjects) {
		t.Fatalf("expected %d records, got %d", len(wantSubjects), len(records))
	}
	for i, want := range wantSubjects {
		if records[i].Subject != want {
			t.Errorf("record %d subject = %q, want %q", i, records[i].Subject, want)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	if records := Parse(nil); len(records) != 0 {
		t.Errorf("expected no records for nil input, got %d", len(records))
	}
	if records := Parse(plain("お知らせ", "以上")); len(records) != 0 {
		t.Errorf("expected no records for prose input, got %d", len(records))
	}
}

func TestParseSubstitutionPairing(t *testing.T) {
	subjects := []string{
		"英語",
		"数学⇒英語",
		"⇒英語",
		"数学⇒",
		"国語→数学→英語",
		"A=>B",
		"C->D",
		"",
	}

	for _, subject := range subjects {
		text := "☆1-A " + subject
		records := Parse(plain(text))
		if len(records) != 1 {
			t.Fatalf("expected 1 record for %q, got %d", text, len(records))
		}
		rec := records[0]
		if (rec.SubjectFrom == nil) != (rec.SubjectTo == nil) {
			t.Errorf("subject %q: from and to must be set together, got from=%v to=%v",
				subject, rec.SubjectFrom, rec.SubjectTo)
		}
		if rec.IsSubstitution() != (rec.SubjectFrom != nil) {
			t.Errorf("subject %q: IsSubstitution disagrees with fields", subject)
		}
	}
}

func TestParseMultipleArrows(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantFrom string
		wantTo   string
	}{
		{
			name:     "repeated arrows rejoin with the same glyph",
			text:     "☆3-A 国語→数学→英語",
			wantFrom: "国語",
			wantTo:   "数学→英語",
		},
		{
			name:     "mixed arrows rejoin with the first glyph",
			text:     "☆3-B 物理⇒化学->生物",
			wantFrom: "物理",
			wantTo:   "化学⇒生物",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Parse(plain(tt.text))
			if len(records) != 1 {
				t.Fatalf("expected 1 record, got %d", len(records))
			}
			rec := records[0]
			if rec.SubjectFrom == nil || rec.SubjectTo == nil {
				t.Fatal("expected a substitution record")
			}
			if *rec.SubjectFrom != tt.wantFrom {
				t.Errorf("subject_from = %q, want %q", *rec.SubjectFrom, tt.wantFrom)
			}
			if *rec.SubjectTo != tt.wantTo {
				t.Errorf("subject_to = %q, want %q", *rec.SubjectTo, tt.wantTo)
			}
		})
	}
}

func TestParsePeriodHeuristic(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{token: "3限", want: true},
		{token: "1・2限", want: true},
		{token: "7・8限", want: true},
		{token: "空きコマ", want: true},
		{token: "2コマ目", want: true},
		{token: "自習", want: false},
		{token: "英語", want: false},
		{token: "限", want: true},
		// A digit-bearing course name is indistinguishable from a
		// period token; the heuristic accepts it.
		{token: "第2外国語", want: true},
	}

	for _, tt := range tests {
		if got := isPeriodToken(tt.token); got != tt.want {
			t.Errorf("isPeriodToken(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestParseSymbolMustLead(t *testing.T) {
	records := Parse(plain(
		"連絡 ◉1-A 3限 英語",
	))
	if len(records) != 0 {
		t.Errorf("expected no records when the symbol is not leading, got %d", len(records))
	}
}
