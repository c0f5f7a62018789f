package gclog_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gclog/gclog-go/pkg/gclog"
)

// ExampleParseReader demonstrates parsing a log and narrowing it to a time window.
func ExampleParseReader() {
	const logData = `[0.009s][info][gc] Using G1
[0.123s][info][gc] GC(1) Pause Young (Allocation Failure) 10M->5M(20M) 2.345ms
[12.0s][info][gc] GC(2) Concurrent Mark 5.001ms
[13.5s][info][gc] GC(3) Pause Remark 20M->20M(64M) 0.751ms
`

	table, err := gclog.ParseReader(context.Background(), strings.NewReader(logData),
		gclog.WithTimeRange(gclog.UpTo(12)),
	)
	if err != nil {
		log.Fatal(err)
	}

	for _, ev := range table.All() {
		fmt.Printf("%.3fs %s %.3fms\n", ev.TimeFromStart, ev.Type, ev.Duration)
	}
	// Output:
	// 0.123s Pause 2.345ms
	// 12.000s Concurrent 5.001ms
}

// ExampleParseLine demonstrates parsing a single line.
func ExampleParseLine() {
	ev, err := gclog.ParseLine("[0.123s][info][gc] GC(1) Pause Young (Allocation Failure) 10M->5M(20M) 2.345ms")
	if err != nil {
		log.Fatal(err)
	}

	mem, _, err := ev.Memory()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(*ev.Name, ev.AdditionalInfo, *ev.MemoryChange)
	fmt.Println("freed bytes:", mem.Freed())
	// Output:
	// Young [(Allocation Failure)] 10M->5M(20M)
	// freed bytes: 5242880
}
