package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abgdnv/shopcart/internal/cart"
	"github.com/abgdnv/shopcart/internal/catalog"
	shoperrors "github.com/abgdnv/shopcart/internal/errors"
	"github.com/abgdnv/shopcart/internal/messaging"
	"github.com/abgdnv/shopcart/internal/order"
	"github.com/abgdnv/shopcart/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, messaging.Event) error { return nil }

// failingWriter is an order.Writer that always fails
type failingWriter struct{}

func (failingWriter) Write(context.Context, order.Summary) error {
	return fmt.Errorf("%w: permission denied", shoperrors.ErrSaveOrder)
}

type fixture struct {
	cart        *cart.Cart
	summaryPath string
	out         *bytes.Buffer
	errOut      *bytes.Buffer
}

func run(t *testing.T, input string, writer order.Writer) (*fixture, error) {
	t.Helper()
	f := &fixture{
		cart:        cart.New(),
		summaryPath: filepath.Join(t.TempDir(), "order_summary.txt"),
		out:         &bytes.Buffer{},
		errOut:      &bytes.Buffer{},
	}
	if writer == nil {
		writer = order.NewFileWriter(f.summaryPath)
	}
	svc := service.NewService(
		catalog.NewInMemoryStore(catalog.Default()...),
		f.cart,
		writer,
		nopPublisher{},
		service.Options{Currency: "Ksh", MaxQuantity: 1000},
		discardLogger,
	)
	opts := Options{Currency: "Ksh", SummaryPath: f.summaryPath, MaxQuantity: 1000}
	menu := NewMenu(svc, strings.NewReader(input), f.out, f.errOut, opts, discardLogger)
	return f, menu.Run(context.Background())
}

func Test_Menu_Choices(t *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedOut    []string
		notExpectedOut []string
		expectedErrOut string
		expectedItems  int
	}{
		{
			name:        "view products",
			input:       "1\n5\n",
			expectedOut: []string{"--- Online Shopping System ---", "    1              Laptop", "    4          Smartwatch", msgGoodbye},
		},
		{
			name:        "view empty cart",
			input:       "3\n5\n",
			expectedOut: []string{"Your cart is empty!"},
		},
		{
			name:          "add and view cart",
			input:         "2\n1\n2\n3\n5\n",
			expectedOut:   []string{"Enter Product ID: ", "Enter Quantity: ", msgProductAdded, "              Laptop         2      140000.00"},
			expectedItems: 1,
		},
		{
			name:           "unknown product ID",
			input:          "2\n42\n1\n5\n",
			expectedOut:    []string{msgInvalidProductID},
			notExpectedOut: []string{msgProductAdded},
		},
		{
			name:           "zero quantity is rejected",
			input:          "2\n1\n0\n5\n",
			expectedOut:    []string{"Invalid quantity! Please enter a value between 1 and 1000."},
			notExpectedOut: []string{msgProductAdded},
		},
		{
			name:        "invalid choice",
			input:       "9\n5\n",
			expectedOut: []string{msgInvalidChoice},
		},
		{
			name:           "non-numeric choice then view products",
			input:          "abc def\n1\n5\n",
			expectedOut:    []string{"High-performance laptop", msgGoodbye},
			expectedErrOut: msgInvalidInput,
		},
		{
			name:           "non-numeric product ID",
			input:          "2\nlaptop\n3\n5\n",
			expectedOut:    []string{"Your cart is empty!"},
			expectedErrOut: msgInvalidInput,
		},
		{
			name:           "non-numeric quantity",
			input:          "2\n1\ntwo\n5\n",
			notExpectedOut: []string{msgProductAdded},
			expectedErrOut: msgInvalidInput,
		},
		{
			name:          "several numbers on one line",
			input:         "2 1 3\n3\n5\n",
			expectedOut:   []string{msgProductAdded, "              Laptop         3      210000.00"},
			expectedItems: 1,
		},
		{
			name:           "invalid token drops the rest of its line",
			input:          "abc 1\n5\n",
			notExpectedOut: []string{"High-performance laptop"},
			expectedErrOut: msgInvalidInput,
		},
		{
			name:        "blank lines are skipped",
			input:       "\n  \n1\n5\n",
			expectedOut: []string{"High-performance laptop", msgGoodbye},
		},
		{
			name:           "over-long line is invalid input",
			input:          strings.Repeat("x", 70*1024) + "\n1\n5\n",
			expectedOut:    []string{"High-performance laptop", msgGoodbye},
			expectedErrOut: msgInvalidInput,
		},
		{
			name:  "end of input exits",
			input: "1\n",
		},
		{
			name:        "last line without newline",
			input:       "1\n5",
			expectedOut: []string{msgGoodbye},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			f, err := run(t, tc.input, nil)
			// then
			require.NoError(t, err)
			for _, s := range tc.expectedOut {
				assert.Contains(t, f.out.String(), s)
			}
			for _, s := range tc.notExpectedOut {
				assert.NotContains(t, f.out.String(), s)
			}
			if tc.expectedErrOut != "" {
				assert.Contains(t, f.errOut.String(), tc.expectedErrOut)
			} else {
				assert.Empty(t, f.errOut.String())
			}
			assert.Equal(t, tc.expectedItems, f.cart.Len())
		})
	}
}

func Test_Menu_Checkout(t *testing.T) {
	// given: Laptop x2, then Laptop x1
	input := "2\n1\n2\n2\n1\n1\n4\n3\n5\n"
	// when
	f, err := run(t, input, nil)
	// then
	require.NoError(t, err)
	out := f.out.String()
	assert.Contains(t, out, "              Laptop         3      210000.00")
	assert.Contains(t, out, "Total Amount: 210000.00 Ksh")
	assert.Contains(t, out, fmt.Sprintf("Order saved to '%s'.", f.summaryPath))
	assert.Contains(t, out, msgThankYou)
	// cart viewed after checkout is empty
	afterCheckout := out[strings.Index(out, msgThankYou):]
	assert.Contains(t, afterCheckout, "Your cart is empty!")
	assert.Equal(t, 0, f.cart.Len())

	data, err := os.ReadFile(f.summaryPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Equal(t, "Total: 210000.00 Ksh", lines[len(lines)-1])
}

func Test_Menu_CheckoutFailureKeepsCart(t *testing.T) {
	f, err := run(t, "2\n2\n1\n4\n5\n", failingWriter{})

	require.NoError(t, err)
	assert.Contains(t, f.errOut.String(), "Failed to save order:")
	assert.NotContains(t, f.out.String(), "Order saved")
	assert.NotContains(t, f.out.String(), msgThankYou)
	assert.Equal(t, 1, f.cart.Len())
}

func Test_Menu_NoSummaryWithoutCheckout(t *testing.T) {
	f, err := run(t, "2\n1\n1\n5\n", nil)

	require.NoError(t, err)
	_, statErr := os.Stat(f.summaryPath)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func Test_Menu_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := &bytes.Buffer{}
	svc := service.NewService(catalog.NewInMemoryStore(), cart.New(), failingWriter{}, nopPublisher{},
		service.Options{Currency: "Ksh", MaxQuantity: 10}, discardLogger)
	menu := NewMenu(svc, strings.NewReader("1\n"), out, io.Discard, Options{}, discardLogger)

	err := menu.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

// signalWriter closes seen the first time text is written
type signalWriter struct {
	text string
	seen chan struct{}
}

func (w signalWriter) Write(p []byte) (int, error) {
	if strings.Contains(string(p), w.text) {
		close(w.seen)
	}
	return len(p), nil
}

func Test_Menu_CancelWhileWaitingForInput(t *testing.T) {
	// given
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := cart.New()
	svc := service.NewService(catalog.NewInMemoryStore(catalog.Default()...), c, failingWriter{}, nopPublisher{},
		service.Options{Currency: "Ksh", MaxQuantity: 10}, discardLogger)
	added := make(chan struct{})
	out := signalWriter{text: msgProductAdded, seen: added}
	menu := NewMenu(svc, pr, out, io.Discard, Options{}, discardLogger)
	done := make(chan error, 1)
	go func() { done <- menu.Run(ctx) }()

	_, err := pw.Write([]byte("2 1 1\n"))
	require.NoError(t, err)
	select {
	case <-added:
	case <-time.After(2 * time.Second):
		t.Fatal("product was not added")
	}

	// when: the menu is waiting for the next choice
	cancel()

	// then
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("menu still waiting for input after cancel")
	}
	assert.Equal(t, 1, c.Len())
}

// errReader fails every read
type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("stdin closed") }

func Test_Menu_ReadError(t *testing.T) {
	svc := service.NewService(catalog.NewInMemoryStore(), cart.New(), failingWriter{}, nopPublisher{},
		service.Options{Currency: "Ksh", MaxQuantity: 10}, discardLogger)
	menu := NewMenu(svc, errReader{}, io.Discard, io.Discard, Options{}, discardLogger)

	err := menu.Run(context.Background())

	assert.ErrorContains(t, err, "stdin closed")
}
