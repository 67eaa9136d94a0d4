package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"chat-relay/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./badger", "Path to badger DB")
	prefix := flag.String("prefix", "", "Prefix to scan (room:, user:, msg: or empty for all)")
	noColour := flag.Bool("no-colour", false, "Disable colorized output")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	header := fmt.Sprintf("  ====== %s ======", *dbPath)
	if !*noColour {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Entity ID", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			rawKey := string(item.Key())

			err := item.Value(func(v []byte) error {
				kind, ts, id, detail := describe(rawKey, v)
				table.Append([]string{rawKey, kind, ts, id, detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// describe classifies a key by its prefix and extracts human-readable
// columns from the JSON value. Rows that fail to decode are kept so
// corrupt entries stay visible.
func describe(key string, value []byte) (kind, ts, id, detail string) {
	switch {
	case strings.HasPrefix(key, "room:"):
		var r domain.Room
		if err := json.Unmarshal(value, &r); err != nil {
			return "ROOM", "", shortID(strings.TrimPrefix(key, "room:")), fmt.Sprintf("decode error: %v", err)
		}
		detail = fmt.Sprintf("%s [%s] %d participants", r.Name, r.Kind, len(r.Participants))
		if exp, ok := r.ExpiresAt(); ok {
			detail += " expires " + exp.Format(time.RFC3339)
		}
		return "ROOM", r.CreatedAt.Format("15:04:05"), shortID(r.ID), detail

	case strings.HasPrefix(key, "user:"):
		var u domain.Identity
		if err := json.Unmarshal(value, &u); err != nil {
			return "USER", "", shortID(strings.TrimPrefix(key, "user:")), fmt.Sprintf("decode error: %v", err)
		}
		return "USER", u.CreatedAt.Format("15:04:05"), shortID(u.ID), fmt.Sprintf("%s <%s> %d chats", u.Name, u.Email, len(u.Chats))

	case strings.HasPrefix(key, "msg:"):
		var m domain.Message
		if err := json.Unmarshal(value, &m); err != nil {
			return "MSG", "", "", fmt.Sprintf("decode error: %v", err)
		}
		detail = m.Text
		if m.Kind == domain.MessageFile && m.File != nil {
			detail = fmt.Sprintf("file %s (%d bytes)", m.File.Name, m.File.Size)
		}
		if len(detail) > 48 {
			detail = detail[:48] + "…"
		}
		return "MSG", m.At.Format("15:04:05"), shortID(m.Sender), detail
	}
	return "?", "", "", fmt.Sprintf("%d bytes", len(value))
}

// shortID keeps the first 8 characters for readability.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
