package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/danuartha/go-commerce-api/config"
	"github.com/danuartha/go-commerce-api/pkg/mailer"
)

// order_worker consumes order jobs from RabbitMQ and sends the confirmation
// email through Mailgun. It runs separately from the API server so a slow mail
// provider never holds up checkout.
func main() {
	cfg := config.Load()
	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; order worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQOrderQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQOrderQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQOrderQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job mailer.OrderJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			subject, text := renderConfirmation(job)

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			if err := mg.Send(c, job.Email, subject, text, ""); err != nil {
				cancel()
				log.Printf("send failed for order %s: %v", job.OrderID, err)
				_ = msg.Nack(false, true)
				continue
			}
			cancel()
			_ = msg.Ack(false)
			log.Printf("confirmation sent for order %s to %s", job.OrderID, job.Email)
		}
		close(done)
	}()

	log.Printf("order worker consuming %q", cfg.RabbitMQOrderQueue)
	<-stop
	log.Println("shutting down order worker")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		log.Println("timed out waiting for in-flight messages")
	}
}

func renderConfirmation(job mailer.OrderJob) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order %s.\n\n", job.Name, job.OrderID)
	for _, it := range job.Items {
		fmt.Fprintf(&b, "  %dx %s @ %s\n", it.Quantity, it.Name, it.Price)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n\nWe'll let you know when it ships.\n", job.TotalAmount)
	return fmt.Sprintf("Order confirmation %s", job.OrderID), b.String()
}
