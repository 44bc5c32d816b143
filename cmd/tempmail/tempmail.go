// The tempmail command reads a disposable mailbox on the 1secmail
// service: generate a throwaway address, list and read its messages,
// save attachments, or sit and watch for new mail.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/knvi/tempmail/internal/config"
	"github.com/knvi/tempmail/internal/homedir"
	"github.com/knvi/tempmail/internal/mailbox"
	"github.com/knvi/tempmail/internal/mailhttp"
	"github.com/knvi/tempmail/internal/message"
	"github.com/knvi/tempmail/internal/tempmail"
	"github.com/knvi/tempmail/internal/tracehttp"
	"github.com/knvi/tempmail/internal/tui"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	flagTrace  = flag.Bool("T", false, "dump HTTP exchanges to stderr")
	flagConfig = flag.String("config", "", "config file (default ~/.tempmail.yaml)")
	flagLogin  = flag.String("login", "", "mailbox username (overrides config)")
	flagDomain = flag.String("domain", "", "mailbox domain (overrides config)")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: tempmail [flags] <command>

commands:
  new              generate and print a random address
  list             list the mailbox's message summaries
  messages         fetch and print every message in full
  read <id>        fetch and print one message
  save <id> [dir]  download all attachments of a message
  watch            poll the mailbox and print new arrivals
  tui              interactive inbox viewer

flags:
`)
	flag.PrintDefaults()
}

func loadConfig() (*config.Config, error) {
	if *flagConfig != "" {
		return config.LoadFromFile(*flagConfig)
	}
	path := homedir.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func newService(cfg *config.Config) (*tempmail.Service, error) {
	box := cfg.Identity()
	if *flagLogin != "" {
		box.Username = *flagLogin
	}
	if *flagDomain != "" {
		d, ok := mailbox.ParseDomain(*flagDomain)
		if !ok {
			return nil, errors.Errorf("unsupported domain %q", *flagDomain)
		}
		box.Domain = d
	}
	if box.Username == "" {
		return nil, errors.New("no mailbox configured; run \"tempmail new\" and set -login or TEMPMAIL_LOGIN")
	}

	transport := mailhttp.New(cfg.API.BaseURL, nil)
	if *flagTrace {
		transport = mailhttp.New(cfg.API.BaseURL, tracehttp.Client(os.Stderr))
	}
	burst := int(cfg.API.RateLimit)
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.API.RateLimit), burst)
	return tempmail.NewLimited(transport, box, limiter), nil
}

func printSummary(sum message.Summary) {
	fmt.Printf("%8d  %s  %-30s  %s\n",
		sum.ID, sum.Date.Format("2006-01-02 15:04"), sum.From, sum.Subject)
}

func printMessage(msg *message.Message) {
	fmt.Printf("From: %s\nSubject: %s\nDate: %s\n", msg.From, msg.Subject,
		msg.Date.Format(time.RFC1123))
	for _, a := range msg.Attachments {
		fmt.Printf("Attachment: %s (%s, %d bytes)\n", a.Filename, a.ContentType, a.Size)
	}
	body := msg.TextBody
	if body == "" {
		body = msg.Body
	}
	fmt.Printf("\n%s\n", body)
}

func cmdNew() error {
	box := mailbox.Random(rand.New(rand.NewSource(time.Now().UnixNano())))
	fmt.Println(box.Address())
	fmt.Fprintf(os.Stderr, "export TEMPMAIL_LOGIN=%s TEMPMAIL_DOMAIN=%s\n",
		box.Username, box.Domain)
	return nil
}

func cmdList(ctx context.Context, svc *tempmail.Service) error {
	sums, err := svc.ListSummaries(ctx)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Printf("mailbox %s is empty\n", svc.Identity().Address())
		return nil
	}
	for _, sum := range sums {
		printSummary(sum)
	}
	return nil
}

func cmdMessages(ctx context.Context, svc *tempmail.Service) error {
	msgs, err := svc.ListMessages(ctx)
	if err != nil {
		return err
	}
	for i, msg := range msgs {
		if i > 0 {
			fmt.Println("---")
		}
		printMessage(msg)
	}
	return nil
}

func cmdRead(ctx context.Context, svc *tempmail.Service, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "bad message id %q", arg)
	}
	msg, err := svc.Read(ctx, message.Summary{ID: id})
	if err != nil {
		return err
	}
	printMessage(msg)
	return nil
}

// cmdSave downloads every attachment of one message, concurrently.
func cmdSave(ctx context.Context, svc *tempmail.Service, arg, dir string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "bad message id %q", arg)
	}
	msg, err := svc.Read(ctx, message.Summary{ID: id})
	if err != nil {
		return err
	}
	if len(msg.Attachments) == 0 {
		fmt.Printf("message %d has no attachments\n", id)
		return nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrapf(err, "creating %q", dir)
	}

	grp, ctx := errgroup.WithContext(ctx)
	for _, a := range msg.Attachments {
		a := a
		grp.Go(func() error {
			b, err := svc.Attachment(ctx, id, a.Filename)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, filepath.Base(a.Filename))
			if err := os.WriteFile(path, b, 0600); err != nil {
				return errors.Wrapf(err, "writing %q", path)
			}
			log.Printf("saved %s (%d bytes)", path, len(b))
			return nil
		})
	}
	return grp.Wait()
}

// cmdWatch polls the mailbox and prints summaries it has not shown
// yet.  The seen-set lives only for the life of the process.
func cmdWatch(ctx context.Context, svc *tempmail.Service, every time.Duration) error {
	log.Printf("watching %s every %v", svc.Identity().Address(), every)
	seen := make(map[int64]bool)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		sums, err := svc.ListSummaries(ctx)
		if err != nil {
			return err
		}
		for _, sum := range sums {
			if seen[sum.ID] {
				continue
			}
			seen[sum.ID] = true
			printSummary(sum)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "unable to load configuration")
	}

	cmd := flag.Arg(0)
	if cmd == "new" {
		return cmdNew()
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		return cmdList(ctx, svc)
	case "messages":
		return cmdMessages(ctx, svc)
	case "read":
		if flag.NArg() < 2 {
			return errors.New("read needs a message id")
		}
		return cmdRead(ctx, svc, flag.Arg(1))
	case "save":
		if flag.NArg() < 2 {
			return errors.New("save needs a message id")
		}
		dir := cfg.DownloadDir
		if flag.NArg() > 2 {
			dir = flag.Arg(2)
		}
		if dir == "" {
			dir = "."
		}
		return cmdSave(ctx, svc, flag.Arg(1), dir)
	case "watch":
		return cmdWatch(ctx, svc, cfg.PollEvery())
	case "tui":
		return tui.Run(svc, cfg.PollEvery())
	default:
		usage()
		return errors.Errorf("unknown command %q", cmd)
	}
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Failed: %v\n", err)
	}
}
