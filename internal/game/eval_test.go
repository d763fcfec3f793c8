package game

import "testing"

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name  string
		board string
		want  int
	}{
		{"empty", ".......", 0},
		{"computer four", "OOOO...", WinScore},
		{"computer five", ".OOOOO.", WinScore},
		{"human four", "XXXX...", -WinScore},
		{"human diagonal four", "...X...\n..XO...\n.XOO...\nXOOX...", -WinScore},
		{"both four computer first", "O..XXXX\nO......\nO......\nO......", WinScore},
		{"weighted", "OOO...X\n......X", 5*1 + 2*2 - 4*0 - 1*1},
		{"mixed axes", "OOXX...\nXXOO...\nOXXX...", 5*0 + 2*3 - 4*1 - 1*8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := ParseBoard(tc.board)
			if got := Evaluate(&b); got != tc.want {
				t.Fatalf("Evaluate = %d, want %d\n%s", got, tc.want, b.String())
			}
		})
	}
}

func TestEvaluateWinOverridesWeights(t *testing.T) {
	b := ParseBoard("XXX....\nXXX....\nOOOO...")
	if b.CountRuns(CellHuman, 3) == 0 {
		t.Fatalf("fixture should give the human threes")
	}
	if got := Evaluate(&b); got != WinScore {
		t.Fatalf("expected %d, got %d", WinScore, got)
	}
}
