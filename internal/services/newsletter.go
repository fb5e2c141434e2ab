package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
)

// NewsletterService 后台分发邮件队列。入队的邮件先落库，
// 再通过缓冲队列异步发送，失败按次数重试。
type NewsletterService struct {
	mail    *MailService
	queue   chan uint // 待发送的 QueuedEmail ID 队列
	pending map[uint]bool
	mu      sync.Mutex
}

const maxSendAttempts = 3

var (
	newsletterService *NewsletterService
	newsletterOnce    sync.Once
)

// GetNewsletterService 获取单例通讯服务
func GetNewsletterService() *NewsletterService {
	newsletterOnce.Do(func() {
		newsletterService = &NewsletterService{
			mail:    NewMailService(),
			queue:   make(chan uint, 1000), // 缓冲队列，防止阻塞
			pending: make(map[uint]bool),
		}
		go newsletterService.worker()
	})
	return newsletterService
}

// Enqueue 将一封邮件写入队列表并调度发送
func (s *NewsletterService) Enqueue(to, subject, kind string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	email := models.QueuedEmail{
		ToEmail: to,
		Subject: subject,
		Kind:    kind,
		Payload: string(raw),
		Status:  models.EmailStatusPending,
	}
	if err := db.DB.Create(&email).Error; err != nil {
		return err
	}

	s.schedule(email.ID)
	return nil
}

// QueueIssue 给全部已确认订阅者排队一期通讯
func (s *NewsletterService) QueueIssue(subject string, articles []models.IssueArticle) (int, error) {
	var subscribers []models.Subscriber
	if err := db.DB.Where("confirmed = ?", true).Find(&subscribers).Error; err != nil {
		return 0, err
	}

	queued := 0
	for _, sub := range subscribers {
		payload := models.IssuePayload{
			Subject:  subject,
			Articles: articles,
			Token:    sub.Token,
		}
		if err := s.Enqueue(sub.Email, subject, models.EmailKindIssue, payload); err != nil {
			log.Printf("Failed to queue issue for %s: %v", sub.Email, err)
			continue
		}
		queued++
	}
	return queued, nil
}

// schedule 将邮件 ID 加入发送队列（去重，非阻塞）
func (s *NewsletterService) schedule(emailID uint) {
	s.mu.Lock()
	if s.pending[emailID] {
		s.mu.Unlock()
		return
	}
	s.pending[emailID] = true
	s.mu.Unlock()

	select {
	case s.queue <- emailID:
	default:
		// 队列满了，移除 pending 标记，等定时扫描兜底
		s.mu.Lock()
		delete(s.pending, emailID)
		s.mu.Unlock()
		log.Printf("邮件发送队列已满，跳过 %d", emailID)
	}
}

// worker 后台处理队列，定时扫描库里遗留的 pending 邮件兜底
func (s *NewsletterService) worker() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case emailID := <-s.queue:
			s.processEmail(emailID)
			s.mu.Lock()
			delete(s.pending, emailID)
			s.mu.Unlock()
		case <-ticker.C:
			s.requeueStale()
		}
	}
}

// requeueStale 重新调度库中 pending 状态的邮件（进程重启后的恢复路径）
func (s *NewsletterService) requeueStale() {
	var emails []models.QueuedEmail
	db.DB.Where("status = ? AND attempts < ?", models.EmailStatusPending, maxSendAttempts).
		Limit(50).Find(&emails)
	for _, e := range emails {
		s.schedule(e.ID)
	}
}

func (s *NewsletterService) processEmail(emailID uint) {
	var email models.QueuedEmail
	if err := db.DB.First(&email, emailID).Error; err != nil {
		return
	}
	if email.Status != models.EmailStatusPending {
		return
	}

	body, err := s.buildBody(&email)
	if err == nil {
		err = s.mail.Send([]string{email.ToEmail}, email.Subject, body)
	}

	email.Attempts++
	if err != nil {
		email.LastError = err.Error()
		if email.Attempts >= maxSendAttempts {
			email.Status = models.EmailStatusFailed
		}
		db.DB.Model(&models.QueuedEmail{}).Where("id = ?", email.ID).
			Updates(map[string]interface{}{
				"attempts":   email.Attempts,
				"status":     email.Status,
				"last_error": email.LastError,
			})
		return
	}

	now := time.Now()
	db.DB.Model(&models.QueuedEmail{}).Where("id = ?", email.ID).
		Updates(map[string]interface{}{
			"attempts": email.Attempts,
			"status":   models.EmailStatusSent,
			"sent_at":  &now,
		})
}

// buildBody 按邮件种类解码 payload 并渲染对应模板
func (s *NewsletterService) buildBody(email *models.QueuedEmail) (string, error) {
	switch email.Kind {
	case models.EmailKindConfirm:
		var payload models.ConfirmPayload
		if err := json.Unmarshal([]byte(email.Payload), &payload); err != nil {
			return "", err
		}
		return s.mail.ParseTemplate("confirm.html", map[string]string{
			"ConfirmURL": fmt.Sprintf("%s/api/newsletter/confirm?token=%s", SiteURL(), payload.Token),
		})
	case models.EmailKindIssue:
		var payload models.IssuePayload
		if err := json.Unmarshal([]byte(email.Payload), &payload); err != nil {
			return "", err
		}
		return s.mail.ParseTemplate("issue.html", map[string]interface{}{
			"Subject":        payload.Subject,
			"Articles":       payload.Articles,
			"SiteURL":        SiteURL(),
			"UnsubscribeURL": fmt.Sprintf("%s/api/newsletter/unsubscribe?token=%s", SiteURL(), payload.Token),
		})
	}
	return "", fmt.Errorf("unknown email kind: %s", email.Kind)
}
