package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	config "github.com/pathanacademy/mining_academy/configs"
	"github.com/pathanacademy/mining_academy/models"
)

// Course reads are cached per document id. The cache is optional: when
// REDIS_URL is unset every lookup falls through to the database.
var redisClient *redis.Client

const courseCacheTTL = 10 * time.Minute

func InitCourseCache() {
	redisURL := config.Config("REDIS_URL")
	if redisURL == "" {
		log.Println("⚠️ REDIS_URL not set, course cache disabled.")
		return
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("🔥 Invalid REDIS_URL, course cache disabled: %v", err)
		return
	}

	redisClient = redis.NewClient(opts)
	log.Println("✅ Course cache initialized successfully.")
}

func CachedCourse(ctx context.Context, id string) (*models.Course, bool) {
	if redisClient == nil {
		return nil, false
	}

	data, err := redisClient.Get(ctx, "course:"+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Course cache read failed for %s: %v", id, err)
		}
		return nil, false
	}

	var course models.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, false
	}
	return &course, true
}

func CacheCourse(ctx context.Context, course *models.Course) {
	if redisClient == nil {
		return
	}

	data, err := json.Marshal(course)
	if err != nil {
		return
	}
	if err := redisClient.Set(ctx, "course:"+course.ID, data, courseCacheTTL).Err(); err != nil {
		log.Printf("Course cache write failed for %s: %v", course.ID, err)
	}
}

func InvalidateCourse(ctx context.Context, id string) {
	if redisClient == nil {
		return
	}
	if err := redisClient.Del(ctx, "course:"+id).Err(); err != nil {
		log.Printf("Course cache invalidation failed for %s: %v", id, err)
	}
}
