package main

import (
	"context"
	"log"

	"flowdeck/internal/config"
	"flowdeck/internal/pkg"
	"flowdeck/internal/repository/mysql"
	redisrepo "flowdeck/internal/repository/redis"
	"flowdeck/internal/router"
	"flowdeck/internal/service"
)

func main() {
	cfg := config.Load()

	pkg.AccessSecret = []byte(cfg.AccessSecret)
	pkg.RefreshSecret = []byte(cfg.RefreshSecret)

	db, err := mysql.InitDB(cfg.MySQLDSN)
	if err != nil {
		panic(err)
	}
	if err := mysql.AutoMigrate(db); err != nil {
		panic(err)
	}

	rdb, err := redisrepo.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		panic(err)
	}
	sessions := &redisrepo.SessionRepository{Client: rdb}
	codes := &redisrepo.CodeRepository{Client: rdb}

	var mailer pkg.Mailer
	if cfg.SMTPHost != "" {
		mailer = pkg.NewSMTPMailer(pkg.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	} else {
		log.Println("smtp not configured, logging mail instead")
		mailer = func(to, subject, htmlBody string) error {
			log.Printf("MAIL to=%s subject=%q", to, subject)
			return nil
		}
	}

	sender := service.Sender(service.LogSender)
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaBrokers[0] != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Printf("kafka init err: %v, falling back to log sender", err)
		} else {
			defer producer.Close()
			sender = service.KafkaSender(producer)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go service.NewActivityRelayer(db, sender).Run(ctx)
	go service.NewDigestScheduler(db, mailer, cfg.DigestInterval).Run(ctx)
	go service.NewRetentionSweeper(db, cfg.RetentionInterval).Run(ctx)

	r := router.InitRouter(router.Deps{
		DB:       db,
		Sessions: sessions,
		Codes:    codes,
		Mailer:   mailer,
	})
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
