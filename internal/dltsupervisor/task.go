package dltsupervisor

import (
	"context"
	"errors"
	"io"

	"github.com/serebryakov7/dlt-parser/internal/dltfs"
	"github.com/serebryakov7/dlt-parser/internal/dltrecord"
	"github.com/sirupsen/logrus"
)

// task drives one chunk's worth of parsing: try a record, on success
// advance and check for chunk exhaustion, on failure either stop (the
// chunk genuinely ran out of bytes) or resync one byte and retry (the
// bytes at this offset are not a valid record). Grounded on
// original_source/thread_supervisor.h's task::execute.
type task struct {
	src     dltfs.Source
	records []*dltrecord.Record
	log     *logrus.Entry
}

func newTask(src dltfs.Source, log *logrus.Entry) *task {
	return &task{src: src, log: log}
}

func (t *task) run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		pos := t.src.Pos()
		rec, err := dltrecord.Parse(t.src)
		if err == nil {
			t.src.NotifySuccess(pos)
			t.records = append(t.records, rec)
			if t.src.Overrun() > 0 {
				return nil
			}
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if len(t.records) == 0 || !t.records[len(t.records)-1].IsCorrupted() {
			if t.log != nil {
				t.log.WithError(err).WithField("offset", pos).Debug("resyncing after corrupted record")
			}
			t.records = append(t.records, dltrecord.NewCorrupted(err.Error()))
		}
		t.src.SetPos(pos + 1)
	}
}
