package oep4

import (
	"context"
	"encoding/json"
	"oep4-squirrel/explorer"
	"oep4-squirrel/models"
	"reflect"
	"testing"
)

func line(from, to, asset, amount string) explorer.TransferLine {
	return explorer.TransferLine{
		FromAddress: from,
		ToAddress:   to,
		AssetName:   asset,
		Amount:      json.Number(amount),
	}
}

func TestMatchTransfers(t *testing.T) {
	tokens := []models.TrackedToken{
		tracked(contractA, "ABC", 2, models.MainNet, "0"),
		tracked(contractB, "LUCKY", 8, models.MainNet, "0"),
	}

	txs := []explorer.Transaction{
		{
			TxnHash: "tx1",
			TransferList: []explorer.TransferLine{
				line(testAddress, otherAddr, "ABC", "12345"),
				line(testAddress, otherAddr, "ong", "0.01"),
			},
		},
		{
			TxnHash: "tx2",
			TransferList: []explorer.TransferLine{
				line(otherAddr, testAddress, "LCY", "7"),
				line(otherAddr, testAddress, "XYZ", "1"),
				line(otherAddr, testAddress, "ont", "3"),
			},
		},
	}

	get := MatchTransfers(testAddress, txs, tokens, DefaultAliases)
	want := []models.TransferRecord{
		{TxHash: "tx1", Asset: "ABC", Amount: "-12345"},
		{TxHash: "tx2", Asset: "LUCKY", Amount: "+7"},
	}

	if !reflect.DeepEqual(get, want) {
		t.Fatalf("get=%+v, want=%+v", get, want)
	}
}

func TestMatchTransfersOneRecordPerLine(t *testing.T) {
	// Two tracked tokens share a symbol, the first one wins.
	tokens := []models.TrackedToken{
		tracked(contractA, "ABC", 2, models.MainNet, "0"),
		tracked(contractB, "ABC", 0, models.MainNet, "0"),
	}
	txs := []explorer.Transaction{{
		TxnHash:      "tx",
		TransferList: []explorer.TransferLine{line(otherAddr, testAddress, "ABC", "1")},
	}}

	get := MatchTransfers(testAddress, txs, tokens, nil)
	if len(get) != 1 {
		t.Fatalf("get %d records, want 1", len(get))
	}
}

func TestMatchTransfersONGExcluded(t *testing.T) {
	tokens := []models.TrackedToken{tracked(contractA, "ong", 9, models.MainNet, "0")}
	txs := []explorer.Transaction{{
		TxnHash:      "tx",
		TransferList: []explorer.TransferLine{line(testAddress, otherAddr, "ong", "1")},
	}}

	if get := MatchTransfers(testAddress, txs, tokens, nil); len(get) != 0 {
		t.Fatalf("get=%+v, want no record", get)
	}
}

func TestMatchTransfersAliasTarget(t *testing.T) {
	// An alias maps to exactly one symbol, never to an arbitrary token.
	tokens := []models.TrackedToken{tracked(contractA, "ABC", 2, models.MainNet, "0")}
	txs := []explorer.Transaction{{
		TxnHash:      "tx",
		TransferList: []explorer.TransferLine{line(otherAddr, testAddress, "LCY", "1")},
	}}

	if get := MatchTransfers(testAddress, txs, tokens, DefaultAliases); len(get) != 0 {
		t.Fatalf("get=%+v, want no record", get)
	}
}

func TestFetchRecent(t *testing.T) {
	registry, _ := newRegistry()
	tokens := []models.TrackedToken{tracked(contractA, "ABC", 2, models.MainNet, "0")}
	exp := &fakeExplorer{txs: []explorer.Transaction{{
		TxnHash:      "tx1",
		TransferList: []explorer.TransferLine{line(otherAddr, testAddress, "ABC", "5")},
	}}}

	m := NewMatcher(exp, registry, 0, nil)
	if m.pageSize != DefaultPageSize {
		t.Fatalf("get page size=%d, want=%d", m.pageSize, DefaultPageSize)
	}

	records := m.FetchRecent(context.Background(), models.MainNet, testAddress, tokens)
	if len(records) != 1 || !reflect.DeepEqual(registry.Transfers(), records) {
		t.Fatalf("get records=%+v, stored=%+v", records, registry.Transfers())
	}

	// The next successful fetch replaces the feed.
	exp.txs = []explorer.Transaction{{
		TxnHash:      "tx2",
		TransferList: []explorer.TransferLine{line(testAddress, otherAddr, "ABC", "2")},
	}}
	m.FetchRecent(context.Background(), models.MainNet, testAddress, tokens)

	want := []models.TransferRecord{{TxHash: "tx2", Asset: "ABC", Amount: "-2"}}
	if !reflect.DeepEqual(registry.Transfers(), want) {
		t.Fatalf("get=%+v, want=%+v", registry.Transfers(), want)
	}

	// A failed fetch keeps it.
	exp.txErr = models.TransportError(errUnreachable)
	get := m.FetchRecent(context.Background(), models.MainNet, testAddress, tokens)
	if !reflect.DeepEqual(get, want) || !reflect.DeepEqual(registry.Transfers(), want) {
		t.Fatalf("get=%+v, want=%+v", get, want)
	}
}

func TestFetchRecentNetworkSwitch(t *testing.T) {
	registry, _ := newRegistry()
	tokens := []models.TrackedToken{tracked(contractA, "ABC", 2, models.MainNet, "0")}
	exp := &fakeExplorer{txs: []explorer.Transaction{{
		TxnHash:      "tx1",
		TransferList: []explorer.TransferLine{line(otherAddr, testAddress, "ABC", "5")},
	}}}

	m := NewMatcher(exp, registry, 0, nil)
	if get := m.FetchRecent(context.Background(), models.MainNet, testAddress, tokens); len(get) != 1 {
		t.Fatalf("get %d records, want 1", len(get))
	}

	exp.txErr = models.TransportError(errUnreachable)
	get := m.FetchRecent(context.Background(), models.TestNet, testAddress, nil)
	if len(get) != 0 || len(registry.Transfers()) != 0 {
		t.Fatalf("get=%+v, stored=%+v, want the main net feed dropped", get, registry.Transfers())
	}
}
