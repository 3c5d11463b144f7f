// 手动写入演示数据脚本
//
// 往数据库里灌一套示例科目、章节和作答记录，用于本地联调前端
// 或演示分析面板。重复执行时已存在的章节会被跳过。
//
// 用法: go run scripts/seed_demo_data.go

package main

import (
	"log"
	"os"

	"omr_backend/internal/config"
	"omr_backend/internal/repository"
	"omr_backend/internal/service"
	"omr_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}

	attemptRepo := repository.NewAttemptRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	subjects := service.NewSubjectService(subjectRepo, nil)
	chapters := service.NewChapterService(chapterRepo, subjectRepo, nil)
	attempts := service.NewAttemptService(attemptRepo, chapterRepo, nil, db)

	subject, err := subjects.CreateSubject(service.CreateSubjectRequest{
		SubjectName: "Mathematics",
		Description: "Sample subject for demos",
	})
	if err != nil {
		log.Printf("科目已存在，跳过: %v", err)
		subject, err = subjectRepo.FindByName("Mathematics")
		if err != nil {
			log.Fatalf("读取示例科目失败: %v", err)
		}
	}

	demoChapters := []service.CreateChapterRequest{
		{ChapterName: "Chapter 1: Algebra", SubjectID: &subject.ID, NumQuestions: 5, NumOptions: 4,
			CorrectAnswers: []string{"A", "B", "C", "D", "A"}},
		{ChapterName: "Chapter 2: Geometry", SubjectID: &subject.ID, NumQuestions: 4, NumOptions: 4,
			CorrectAnswers: []string{"B", "B", "A", "C"}},
	}

	demoSubmissions := map[string][]struct {
		student string
		answers []string
	}{
		"Chapter 1: Algebra": {
			{student: "Alice", answers: []string{"A", "B", "C", "D", "A"}},
			{student: "Bob", answers: []string{"A", "C", "C", "A", "A"}},
		},
		"Chapter 2: Geometry": {
			{student: "Alice", answers: []string{"B", "A", "A", "C"}},
			{student: "Carol", answers: []string{"C", "B", "A", "C"}},
		},
	}

	for _, req := range demoChapters {
		chapter, err := chapters.CreateChapter(req)
		if err != nil {
			log.Printf("章节 %q 已存在，跳过", req.ChapterName)
			continue
		}
		for _, sub := range demoSubmissions[req.ChapterName] {
			if _, err := attempts.SubmitAttempt(service.SubmitAttemptRequest{
				ChapterID:        chapter.ID,
				StudentName:      sub.student,
				SubmittedAnswers: sub.answers,
			}); err != nil {
				log.Fatalf("写入示例作答失败: %v", err)
			}
		}
		log.Printf("已写入章节 %q 及其示例作答", req.ChapterName)
	}

	log.Println("演示数据写入完成")
}
