package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/ayusman/pomohand/internal/config"
	"github.com/ayusman/pomohand/internal/store"
)

// configCommand manages persisted settings.
func configCommand(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: pomohand config list | set KEY VALUE | unset KEY")
	}
	sub, args := args[0], args[1:]

	// Flags such as -db may follow the subcommand
	l, err := loadConfig("config "+sub, args)
	if err != nil {
		return err
	}
	if l.storeErr != nil {
		return fmt.Errorf("open settings store: %w", l.storeErr)
	}
	defer l.store.Close()

	cfg, st, rest := l.cfg, l.store, l.args

	switch sub {
	case "list":
		return listSettings(out, cfg, st)
	case "set":
		if len(rest) != 2 {
			return errors.New("usage: pomohand config set KEY VALUE")
		}
		return setSetting(out, st, rest[0], rest[1])
	case "unset":
		if len(rest) != 1 {
			return errors.New("usage: pomohand config unset KEY")
		}
		return unsetSetting(out, st, rest[0])
	default:
		return fmt.Errorf("unknown config command %q", sub)
	}
}

func listSettings(out io.Writer, cfg config.Config, st *store.Store) error {
	saved, err := st.Settings().List()
	if err != nil {
		return fmt.Errorf("list settings: %w", err)
	}
	persisted := make(map[string]bool, len(saved))
	for _, s := range saved {
		persisted[s.Key] = true
	}

	for _, key := range config.Keys() {
		value, _ := cfg.Value(key)
		marker := ""
		if persisted[key] {
			marker = "  (saved)"
		}
		fmt.Fprintf(out, "%-18s %s%s\n", key, value, marker)
	}
	return nil
}

func setSetting(out io.Writer, st *store.Store, key, value string) error {
	if err := config.Check(key, value); err != nil {
		return err
	}
	if err := st.Settings().Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	fmt.Fprintf(out, "%s = %s\n", key, value)
	return nil
}

func unsetSetting(out io.Writer, st *store.Store, key string) error {
	err := st.Settings().Delete(key)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(out, "%s was not set\n", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	fmt.Fprintf(out, "%s removed\n", key)
	return nil
}
