package chainconfig

import (
	"github.com/fsnotify/fsnotify"

	"github.com/chainproc/chainproc/log"
)

// Watch re-parses path on every write event and publishes the resulting
// ProcessorConfig on the returned channel, until stop is closed. A parse
// failure after a file change is logged and skipped — the previous
// configuration stays in effect — rather than closing the channel, so a
// transient editor save (partial write) never takes a running host down.
//
// Grounded on the fsnotify watch-loop idiom used throughout go-ethereum's
// accounts/keystore file-watching code, adapted here to config hot-reload
// (SPEC_FULL.md §10.3).
func Watch(path string, stop <-chan struct{}) (<-chan ProcessorConfig, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan ProcessorConfig)
	go func() {
		defer watcher.Close()
		defer close(out)
		logger := log.Root().With("component", "chainconfig-watch", "path", path)
		for {
			select {
			case <-stop:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logger.Warn("config reload failed, keeping previous configuration", "err", err)
					continue
				}
				select {
				case out <- cfg:
				case <-stop:
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "err", err)
			}
		}
	}()
	return out, nil
}
