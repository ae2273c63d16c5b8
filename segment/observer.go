package segment

// Observer is notified as a target progresses. Calls happen on the downloading goroutine.
type Observer interface {
	// Begin is called once the marker exists, before the init segment is written.
	Begin(t Target, segments int, restarted bool)
	// Segment is called after segment index was fully appended.
	Segment(t Target, index int, bytes int64)
	// Retry is called before segment index is re-requested after an idle timeout.
	Retry(t Target, index int, attempt int)
	// End is called with the final outcome of every download that got past the pre-check.
	End(t Target, outcome Outcome)
}

// Observers fans out every notification.
type Observers []Observer

func (o Observers) Begin(t Target, segments int, restarted bool) {
	for _, obs := range o {
		obs.Begin(t, segments, restarted)
	}
}

func (o Observers) Segment(t Target, index int, bytes int64) {
	for _, obs := range o {
		obs.Segment(t, index, bytes)
	}
}

func (o Observers) Retry(t Target, index int, attempt int) {
	for _, obs := range o {
		obs.Retry(t, index, attempt)
	}
}

func (o Observers) End(t Target, outcome Outcome) {
	for _, obs := range o {
		obs.End(t, outcome)
	}
}

type nopObserver struct{}

func (nopObserver) Begin(Target, int, bool) {}
func (nopObserver) Segment(Target, int, int64) {}
func (nopObserver) Retry(Target, int, int) {}
func (nopObserver) End(Target, Outcome) {}
