package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
	cctGrpc "liyu1981.xyz/cct-cloud-service/pkg/grpc"
)

var maxDevices int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient *cctGrpc.DeviceTelemetryClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

type device struct {
	DeviceID string `json:"device_id"`
	APIKey   string `json:"api_key"`
}

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = cctGrpc.NewDeviceTelemetryClient(conn)

	fmt.Printf("gRPC client created\n")

	var startTime time.Time
	var usedTime time.Duration

	devices := make([]device, maxDevices)

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxDevices {
		wg.Add(1)
		go func() {
			devices[i] = registerDevice()
			fmt.Printf("\rregistered device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxDevices {
		wg.Add(1)
		go func() {
			doAction(devices[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func rndSleep() time.Duration {
	rndMu.Lock()
	defer rndMu.Unlock()
	return time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
}

func postJSON(path string, apiKey string, payload any) (*http.Response, error) {
	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://%s%s", httpHostPort, path), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	return http.DefaultClient.Do(req)
}

func withKey(apiKey string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), cctGrpc.MetadataAPIKey, apiKey)
}

func registerDevice() device {
	resp, err := postJSON("/api/v1/devices/register", "", map[string]string{
		"model":            "CCT-BENCH",
		"firmware_version": "1.0.0",
	})
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("register failed: %v", resp.Status))
	}

	var d device
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		panic(err)
	}
	return d
}

func doAction(d device) {
	actions := []func(){
		genSetTargetAction(d),
		genSyncSettingsAction(d),
		genPostTemperatureAction(d),
	}
	actionNames := []string{
		"SetTarget",
		"SyncSettings",
		"PostTemperature",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for device %v", actionNames[index], d.DeviceID)
		time.Sleep(rndSleep())
	}
}

func report(resp *http.Response, err error) {
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("\nresponse status code != 200: %v\n", resp.Status)
	}
}

func genSetTargetAction(d device) func() {
	return func() {
		t := rndFloat64(120.0, 250.0, 1)

		if flipCoin() {
			report(postJSON("/api/v1/temperature/target", d.APIKey, map[string]any{
				"device_id":   d.DeviceID,
				"temperature": t,
			}))
		} else {
			in, _ := structpb.NewStruct(map[string]any{"device_id": d.DeviceID, "temperature": t})
			if _, err := grpcClient.SetTarget(withKey(d.APIKey), in); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}

func genPostTemperatureAction(d device) func() {
	return func() {
		t := rndFloat64(60.0, 260.0, 2)

		if flipCoin() {
			report(postJSON("/api/v1/temperature/update", d.APIKey, map[string]any{
				"device_id":           d.DeviceID,
				"average_temperature": t,
			}))
		} else {
			in, _ := structpb.NewStruct(map[string]any{"device_id": d.DeviceID, "average_temperature": t})
			if _, err := grpcClient.SubmitTemperature(withKey(d.APIKey), in); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}

func genSyncSettingsAction(d device) func() {
	return func() {
		if flipCoin() {
			req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("http://%s/api/v1/settings/%s/sync", httpHostPort, d.DeviceID), nil)
			req.Header.Set("X-API-Key", d.APIKey)
			report(http.DefaultClient.Do(req))
		} else {
			in, _ := structpb.NewStruct(map[string]any{"device_id": d.DeviceID})
			if _, err := grpcClient.SyncSettings(withKey(d.APIKey), in); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}
