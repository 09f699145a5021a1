//go:build ignore

// Сквозная проверка поиска в радиусе: /area -> опрос /area-result -> событие в стриме.
// go run scripts/area_search.go -api http://localhost:8080 -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

type areaResponse struct {
	ResultsURL string `json:"resultsUrl"`
}

type citiesResponse struct {
	Cities []map[string]interface{} `json:"cities"`
}

func main() {
	api := flag.String("api", "http://localhost:8080", "API base URL")
	redisAddr := flag.String("redis", "", "Redis address for the completion stream (empty = skip)")
	stream := flag.String("stream", "stream:cities:search:done", "completion stream")
	from := flag.String("from", "ed354fef-31d3-44a9-b92f-4a3bd7eb0408", "origin city guid")
	distance := flag.Float64("distance", 250, "radius, km")
	flag.Parse()

	ctx := context.Background()
	startID := "$"

	var client *redis.Client
	if *redisAddr != "" {
		client = redis.NewClient(&redis.Options{Addr: *redisAddr})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		// запоминаем конец стрима, чтобы не читать старые события
		if last, err := client.XRevRangeN(ctx, *stream, "+", "-", 1).Result(); err == nil && len(last) > 0 {
			startID = last[0].ID
		} else {
			startID = "0"
		}
	}

	q := url.Values{}
	q.Set("from", *from)
	q.Set("distance", fmt.Sprintf("%g", *distance))

	var area areaResponse
	status, err := getJSON(*api+"/area?"+q.Encode(), &area)
	if err != nil {
		log.Fatalf("Failed to submit search: %v", err)
	}
	if status != http.StatusAccepted {
		log.Fatalf("Unexpected status %d from /area", status)
	}

	fmt.Printf("✅ Search submitted\n")
	fmt.Printf("   Results URL: %s\n", area.ResultsURL)
	fmt.Printf("\n⏳ Polling for result...\n")

	started := time.Now()
	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

poll:
	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for result")
			return
		case <-ticker.C:
			var result citiesResponse
			status, err := getJSON(area.ResultsURL, &result)
			if err != nil {
				continue
			}
			if status == http.StatusOK {
				fmt.Printf("\n✅ Result ready after %s: %d cities\n", time.Since(started).Round(time.Millisecond), len(result.Cities))
				for _, c := range result.Cities {
					fmt.Printf("   %v  %v\n", c["guid"], c["name"])
				}
				break poll
			}
		}
	}

	if client == nil {
		return
	}

	fmt.Printf("\n⏳ Waiting for completion event in %s...\n", *stream)
	res, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{*stream, startID},
		Count:   1,
		Block:   10 * time.Second,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			fmt.Println("❌ No event received")
			return
		}
		log.Fatalf("Failed to read stream: %v", err)
	}

	for _, s := range res {
		for _, msg := range s.Messages {
			var event map[string]interface{}
			if err := json.Unmarshal([]byte(fmt.Sprint(msg.Values["data"])), &event); err != nil {
				continue
			}
			pretty, _ := json.MarshalIndent(event, "", "  ")
			fmt.Printf("\n✅ Event received (%s)\n%s\n", msg.ID, pretty)
		}
	}
}

func getJSON(target string, out interface{}) (int, error) {
	resp, err := http.Get(target)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}
