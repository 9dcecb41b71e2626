package core

import (
	"testing"
)

func sampleLines() []RoomLine {
	rates := DefaultRateTable()
	a := SelectCategory(RoomLine{ID: "a", Rooms: 2, Nights: 3}, "Deluxe room", rates)
	b := EditRate(RoomLine{ID: "b", Rooms: 1, Nights: 2}, dec("1750.50"))
	c := SelectCategory(RoomLine{ID: "c", Rooms: 1, Nights: 1}, "Dormitory", rates)
	d := SelectCategory(RoomLine{ID: "d", Rooms: 1, Nights: 3}, "Deluxe room", rates)
	return []RoomLine{a, b, c, d}
}

func TestAggregateTotals(t *testing.T) {
	totals, _ := Aggregate(sampleLines())

	// 15000 + 3501 + 1200 + 7500
	if !totals.Subtotal.Equal(dec("27201")) {
		t.Fatalf("subtotal %s", totals.Subtotal)
	}
	if !totals.SGST.Equal(dec("680.025")) || !totals.CGST.Equal(dec("680.025")) {
		t.Fatalf("taxes %s %s", totals.SGST, totals.CGST)
	}
	if !totals.GrandTotal.Equal(dec("28561.05")) {
		t.Fatalf("grand total %s", totals.GrandTotal)
	}

	sum := dec("0")
	for _, l := range sampleLines() {
		sum = sum.Add(l.Total)
	}
	if !sum.Equal(totals.GrandTotal) {
		t.Fatalf("sum of line totals %s != grand total %s", sum, totals.GrandTotal)
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	lines := sampleLines()
	want, _ := Aggregate(lines)

	perms := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, p := range perms {
		shuffled := make([]RoomLine, len(lines))
		for i, j := range p {
			shuffled[i] = lines[j]
		}
		got, _ := Aggregate(shuffled)
		if !got.Subtotal.Equal(want.Subtotal) || !got.SGST.Equal(want.SGST) ||
			!got.CGST.Equal(want.CGST) || !got.GrandTotal.Equal(want.GrandTotal) {
			t.Fatalf("permutation %v changed totals: %+v vs %+v", p, got, want)
		}
	}
}

func TestAggregateSummary(t *testing.T) {
	_, summary := Aggregate(sampleLines())
	if len(summary) != 3 {
		t.Fatalf("expected 3 groups, got %d: %+v", len(summary), summary)
	}
	order := []string{"Deluxe room", UncategorizedLabel, "Dormitory"}
	for i, want := range order {
		if summary[i].Category != want {
			t.Fatalf("group %d expected %q, got %q", i, want, summary[i].Category)
		}
	}
	deluxe := summary[0]
	if deluxe.Rooms != 3 || deluxe.Nights != 6 || !deluxe.Subtotal.Equal(dec("22500")) || !deluxe.Total.Equal(dec("23625")) {
		t.Fatalf("unexpected deluxe row %+v", deluxe)
	}
}

func TestAggregateEmpty(t *testing.T) {
	totals, summary := Aggregate(nil)
	if !totals.GrandTotal.IsZero() || !totals.Subtotal.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
	if summary == nil || len(summary) != 0 {
		t.Fatalf("expected empty non-nil summary, got %#v", summary)
	}
}

func TestAggregateRecomputesStaleLines(t *testing.T) {
	stale := RoomLine{Rate: dec("1000"), Rooms: 1, Nights: 1, Subtotal: dec("99999"), Total: dec("99999")}
	totals, _ := Aggregate([]RoomLine{stale})
	if !totals.GrandTotal.Equal(dec("1050")) {
		t.Fatalf("expected recomputed total 1050, got %s", totals.GrandTotal)
	}
}
